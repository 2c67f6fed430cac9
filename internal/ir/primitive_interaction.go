package ir

// Click performs a single left click on the located element.
type Click struct {
	Locator Locator `json:"locator"`
}

func (Click) Kind() PrimitiveType { return PrimClick }
func (Click) isPrimitive()        {}

// DblClick performs a double click.
type DblClick struct {
	Locator Locator `json:"locator"`
}

func (DblClick) Kind() PrimitiveType { return PrimDblClick }
func (DblClick) isPrimitive()        {}

// RightClick opens the context menu on the located element.
type RightClick struct {
	Locator Locator `json:"locator"`
}

func (RightClick) Kind() PrimitiveType { return PrimRightClick }
func (RightClick) isPrimitive()        {}

// Hover moves the pointer over the located element without clicking.
type Hover struct {
	Locator Locator `json:"locator"`
}

func (Hover) Kind() PrimitiveType { return PrimHover }
func (Hover) isPrimitive()        {}

// Focus moves keyboard focus to the located element.
type Focus struct {
	Locator Locator `json:"locator"`
}

func (Focus) Kind() PrimitiveType { return PrimFocus }
func (Focus) isPrimitive()        {}

// Clear empties the located input's current value.
type Clear struct {
	Locator Locator `json:"locator"`
}

func (Clear) Kind() PrimitiveType { return PrimClear }
func (Clear) isPrimitive()        {}

// Fill types Value into the located input, replacing any existing content.
type Fill struct {
	Locator Locator   `json:"locator"`
	Value   ValueSpec `json:"value"`
}

func (Fill) Kind() PrimitiveType { return PrimFill }
func (Fill) isPrimitive()        {}

// Select chooses Option in the located control (native select, combobox).
type Select struct {
	Locator Locator   `json:"locator"`
	Option  ValueSpec `json:"option"`
}

func (Select) Kind() PrimitiveType { return PrimSelect }
func (Select) isPrimitive()        {}

// Check sets the located checkbox/radio to checked.
type Check struct {
	Locator Locator `json:"locator"`
}

func (Check) Kind() PrimitiveType { return PrimCheck }
func (Check) isPrimitive()        {}

// Uncheck clears the located checkbox.
type Uncheck struct {
	Locator Locator `json:"locator"`
}

func (Uncheck) Kind() PrimitiveType { return PrimUncheck }
func (Uncheck) isPrimitive()        {}

// Press sends a keyboard key, optionally scoped to a located element.
type Press struct {
	Key     string   `json:"key"`
	Locator *Locator `json:"locator,omitempty"`
}

func (Press) Kind() PrimitiveType { return PrimPress }
func (Press) isPrimitive()        {}

// Upload attaches Files to the located file input.
type Upload struct {
	Locator Locator  `json:"locator"`
	Files   []string `json:"files"`
}

func (Upload) Kind() PrimitiveType { return PrimUpload }
func (Upload) isPrimitive()        {}

// CallModule invokes Method on the page-object module Module, passing Args.
// This is the escape hatch into hand-written page objects for behavior the
// primitive set cannot express directly.
type CallModule struct {
	Module string             `json:"module"`
	Method string             `json:"method"`
	Args   map[string]IRValue `json:"args,omitempty"`
}

func (CallModule) Kind() PrimitiveType { return PrimCallModule }
func (CallModule) isPrimitive()        {}
