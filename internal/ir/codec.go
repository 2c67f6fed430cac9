package ir

import (
	"encoding/json"
	"fmt"
)

// MarshalPrimitive serializes a primitive's payload (locator, value, and any
// other fields) as JSON. The primitive's Kind is not embedded; callers
// persist it alongside the payload and pass it back to UnmarshalPrimitive.
func MarshalPrimitive(p Primitive) ([]byte, error) {
	return json.Marshal(p)
}

func decodePrimitiveAs[T Primitive](data []byte, t PrimitiveType) (Primitive, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("unmarshal %s primitive: %w", t, err)
	}
	return v, nil
}

// UnmarshalPrimitive reconstructs the concrete primitive of type t from a
// payload produced by MarshalPrimitive. An unknown type tag is an error:
// silently substituting a different primitive would let a stale store entry
// compile to the wrong action.
func UnmarshalPrimitive(t PrimitiveType, data []byte) (Primitive, error) {
	switch t {
	case PrimGoto:
		return decodePrimitiveAs[Goto](data, t)
	case PrimReload:
		return decodePrimitiveAs[Reload](data, t)
	case PrimGoBack:
		return decodePrimitiveAs[GoBack](data, t)
	case PrimGoForward:
		return decodePrimitiveAs[GoForward](data, t)
	case PrimWaitForURL:
		return decodePrimitiveAs[WaitForURL](data, t)
	case PrimWaitForResponse:
		return decodePrimitiveAs[WaitForResponse](data, t)
	case PrimWaitForLoadingComplete:
		return decodePrimitiveAs[WaitForLoadingComplete](data, t)
	case PrimWaitForVisible:
		return decodePrimitiveAs[WaitForVisible](data, t)
	case PrimWaitForHidden:
		return decodePrimitiveAs[WaitForHidden](data, t)
	case PrimWaitForTimeout:
		return decodePrimitiveAs[WaitForTimeout](data, t)
	case PrimWaitForNetworkIdle:
		return decodePrimitiveAs[WaitForNetworkIdle](data, t)
	case PrimClick:
		return decodePrimitiveAs[Click](data, t)
	case PrimDblClick:
		return decodePrimitiveAs[DblClick](data, t)
	case PrimRightClick:
		return decodePrimitiveAs[RightClick](data, t)
	case PrimHover:
		return decodePrimitiveAs[Hover](data, t)
	case PrimFocus:
		return decodePrimitiveAs[Focus](data, t)
	case PrimClear:
		return decodePrimitiveAs[Clear](data, t)
	case PrimFill:
		return decodePrimitiveAs[Fill](data, t)
	case PrimSelect:
		return decodePrimitiveAs[Select](data, t)
	case PrimCheck:
		return decodePrimitiveAs[Check](data, t)
	case PrimUncheck:
		return decodePrimitiveAs[Uncheck](data, t)
	case PrimPress:
		return decodePrimitiveAs[Press](data, t)
	case PrimUpload:
		return decodePrimitiveAs[Upload](data, t)
	case PrimCallModule:
		// CallModule's Args field is a map of the sealed IRValue interface,
		// which encoding/json cannot fill directly; route it through
		// IRObject's own unmarshaler.
		var shim struct {
			Module string   `json:"module"`
			Method string   `json:"method"`
			Args   IRObject `json:"args,omitempty"`
		}
		if err := json.Unmarshal(data, &shim); err != nil {
			return nil, fmt.Errorf("unmarshal callModule primitive: %w", err)
		}
		cm := CallModule{Module: shim.Module, Method: shim.Method}
		if len(shim.Args) > 0 {
			cm.Args = map[string]IRValue(shim.Args)
		}
		return cm, nil
	case PrimExpectVisible:
		return decodePrimitiveAs[ExpectVisible](data, t)
	case PrimExpectNotVisible:
		return decodePrimitiveAs[ExpectNotVisible](data, t)
	case PrimExpectHidden:
		return decodePrimitiveAs[ExpectHidden](data, t)
	case PrimExpectEnabled:
		return decodePrimitiveAs[ExpectEnabled](data, t)
	case PrimExpectDisabled:
		return decodePrimitiveAs[ExpectDisabled](data, t)
	case PrimExpectChecked:
		return decodePrimitiveAs[ExpectChecked](data, t)
	case PrimExpectText:
		return decodePrimitiveAs[ExpectText](data, t)
	case PrimExpectValue:
		return decodePrimitiveAs[ExpectValue](data, t)
	case PrimExpectContainsText:
		return decodePrimitiveAs[ExpectContainsText](data, t)
	case PrimExpectCount:
		return decodePrimitiveAs[ExpectCount](data, t)
	case PrimExpectURL:
		return decodePrimitiveAs[ExpectURL](data, t)
	case PrimExpectTitle:
		return decodePrimitiveAs[ExpectTitle](data, t)
	case PrimExpectToast:
		return decodePrimitiveAs[ExpectToast](data, t)
	case PrimBlocked:
		return decodePrimitiveAs[Blocked](data, t)
	default:
		return nil, fmt.Errorf("unknown primitive type %q", t)
	}
}
