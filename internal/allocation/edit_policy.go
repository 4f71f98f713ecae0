package allocation

import "fmt"

// EditPolicy decides what happens to an allocation above the available
// quantity: reject surfaces the engine's InvalidQuantityError, clamp pulls
// the allocation into [0, availableQty] and classifies again.
type EditPolicy string

const (
	EditPolicyReject EditPolicy = "reject"
	EditPolicyClamp  EditPolicy = "clamp"
)

func ParseEditPolicy(s string) (EditPolicy, error) {
	switch p := EditPolicy(s); p {
	case EditPolicyReject, EditPolicyClamp:
		return p, nil
	case "":
		return EditPolicyReject, nil
	default:
		return "", fmt.Errorf("unknown edit policy %q", s)
	}
}
