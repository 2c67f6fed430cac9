package ir

// PrimitiveType identifies the concrete shape of a Primitive. It is returned
// by every primitive's Kind method (not embedded in its JSON form) for
// provenance reporting: the pattern catalog, the LLKB store, and the healing engine all need to know
// which primitive kind produced or is being mutated, without type-asserting
// through every concrete struct.
type PrimitiveType string

// Navigation/wait primitives.
const (
	PrimGoto                   PrimitiveType = "goto"
	PrimReload                 PrimitiveType = "reload"
	PrimGoBack                 PrimitiveType = "goBack"
	PrimGoForward              PrimitiveType = "goForward"
	PrimWaitForURL             PrimitiveType = "waitForURL"
	PrimWaitForResponse        PrimitiveType = "waitForResponse"
	PrimWaitForLoadingComplete PrimitiveType = "waitForLoadingComplete"
	PrimWaitForVisible         PrimitiveType = "waitForVisible"
	PrimWaitForHidden          PrimitiveType = "waitForHidden"
	PrimWaitForTimeout         PrimitiveType = "waitForTimeout"
	PrimWaitForNetworkIdle     PrimitiveType = "waitForNetworkIdle"
)

// Interaction primitives.
const (
	PrimClick      PrimitiveType = "click"
	PrimDblClick   PrimitiveType = "dblclick"
	PrimRightClick PrimitiveType = "rightClick"
	PrimHover      PrimitiveType = "hover"
	PrimFocus      PrimitiveType = "focus"
	PrimClear      PrimitiveType = "clear"
	PrimFill       PrimitiveType = "fill"
	PrimSelect     PrimitiveType = "select"
	PrimCheck      PrimitiveType = "check"
	PrimUncheck    PrimitiveType = "uncheck"
	PrimPress      PrimitiveType = "press"
	PrimUpload     PrimitiveType = "upload"
	PrimCallModule PrimitiveType = "callModule"
)

// Assertion primitives. All begin with "expect".
const (
	PrimExpectVisible      PrimitiveType = "expectVisible"
	PrimExpectNotVisible   PrimitiveType = "expectNotVisible"
	PrimExpectHidden       PrimitiveType = "expectHidden"
	PrimExpectEnabled      PrimitiveType = "expectEnabled"
	PrimExpectDisabled     PrimitiveType = "expectDisabled"
	PrimExpectChecked      PrimitiveType = "expectChecked"
	PrimExpectText         PrimitiveType = "expectText"
	PrimExpectValue        PrimitiveType = "expectValue"
	PrimExpectContainsText PrimitiveType = "expectContainsText"
	PrimExpectCount        PrimitiveType = "expectCount"
	PrimExpectURL          PrimitiveType = "expectURL"
	PrimExpectTitle        PrimitiveType = "expectTitle"
	PrimExpectToast        PrimitiveType = "expectToast"
)

// Terminal primitive: a step the mapper could not compile.
const PrimBlocked PrimitiveType = "blocked"

// IsAssertion reports whether a primitive type belongs to the assertion
// family (its JSON tag begins with "expect").
func (t PrimitiveType) IsAssertion() bool {
	switch t {
	case PrimExpectVisible, PrimExpectNotVisible, PrimExpectHidden, PrimExpectEnabled,
		PrimExpectDisabled, PrimExpectChecked, PrimExpectText, PrimExpectValue,
		PrimExpectContainsText, PrimExpectCount, PrimExpectURL, PrimExpectTitle, PrimExpectToast:
		return true
	default:
		return false
	}
}

// Primitive is the sealed sum covering every IR leaf action or assertion.
// Only types defined in this package implement it. Exhaustive switches over
// Primitive (in the renderer, the healing engine, the LLKB store) are the
// correct way to consume it; adding a new verb means adding a new case, never
// touching the existing ones.
type Primitive interface {
	// Kind returns the concrete primitive type for dispatch and provenance.
	Kind() PrimitiveType
	isPrimitive()
}

// LocatorStrategy ranks how a Locator should be resolved at render time.
// Priority order (highest to lowest, per the default selector policy) is
// role > label > placeholder > text > testid > css.
type LocatorStrategy string

const (
	StrategyRole        LocatorStrategy = "role"
	StrategyLabel       LocatorStrategy = "label"
	StrategyPlaceholder LocatorStrategy = "placeholder"
	StrategyText        LocatorStrategy = "text"
	StrategyTestID      LocatorStrategy = "testid"
	StrategyCSS         LocatorStrategy = "css"
)

// LocatorOptions carries the optional qualifiers a locator strategy may use.
type LocatorOptions struct {
	Name  string `json:"name,omitempty"`
	Exact bool   `json:"exact,omitempty"`
	Level int    `json:"level,omitempty"`
}

// Locator is a strategy-parameterized reference to a UI element, resolved to
// runner syntax at render time by the selector policy.
//
// Invariant: StrategyCSS is the strategy of last resort and may be marked
// forbidden by policy (see internal/selector).
type Locator struct {
	Strategy LocatorStrategy `json:"strategy"`
	Value    string          `json:"value"`
	Options  *LocatorOptions `json:"options,omitempty"`
}

// ValueType tags the source of a fill/select value.
type ValueType string

const (
	ValueLiteral   ValueType = "literal"
	ValueActor     ValueType = "actor"
	ValueRunID     ValueType = "runId"
	ValueGenerated ValueType = "generated"
	ValueTestData  ValueType = "testData"
)

// ValueSpec is a tagged value used by fill/select primitives. Actor and
// TestData values reference ambient identifiers the runtime binds at
// execution time rather than literal text known at compile time.
type ValueSpec struct {
	Type  ValueType `json:"type"`
	Value string    `json:"value"`
}

// Literal constructs a literal ValueSpec.
func Literal(v string) ValueSpec { return ValueSpec{Type: ValueLiteral, Value: v} }
