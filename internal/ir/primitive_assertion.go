package ir

// ExpectVisible asserts the located element is visible.
type ExpectVisible struct {
	Locator Locator `json:"locator"`
}

func (ExpectVisible) Kind() PrimitiveType { return PrimExpectVisible }
func (ExpectVisible) isPrimitive()        {}

// ExpectNotVisible asserts the located element is not visible (may still
// exist in the DOM, e.g. display:none).
type ExpectNotVisible struct {
	Locator Locator `json:"locator"`
}

func (ExpectNotVisible) Kind() PrimitiveType { return PrimExpectNotVisible }
func (ExpectNotVisible) isPrimitive()        {}

// ExpectHidden asserts the located element is hidden or detached entirely.
type ExpectHidden struct {
	Locator Locator `json:"locator"`
}

func (ExpectHidden) Kind() PrimitiveType { return PrimExpectHidden }
func (ExpectHidden) isPrimitive()        {}

// ExpectEnabled asserts the located control accepts interaction.
type ExpectEnabled struct {
	Locator Locator `json:"locator"`
}

func (ExpectEnabled) Kind() PrimitiveType { return PrimExpectEnabled }
func (ExpectEnabled) isPrimitive()        {}

// ExpectDisabled asserts the located control rejects interaction.
type ExpectDisabled struct {
	Locator Locator `json:"locator"`
}

func (ExpectDisabled) Kind() PrimitiveType { return PrimExpectDisabled }
func (ExpectDisabled) isPrimitive()        {}

// ExpectChecked asserts the located checkbox/radio is checked.
type ExpectChecked struct {
	Locator Locator `json:"locator"`
}

func (ExpectChecked) Kind() PrimitiveType { return PrimExpectChecked }
func (ExpectChecked) isPrimitive()        {}

// ExpectText asserts the located element's text content equals Value
// exactly.
type ExpectText struct {
	Locator Locator `json:"locator"`
	Value   string  `json:"value"`
}

func (ExpectText) Kind() PrimitiveType { return PrimExpectText }
func (ExpectText) isPrimitive()        {}

// ExpectValue asserts the located input's current value equals Value.
type ExpectValue struct {
	Locator Locator `json:"locator"`
	Value   string  `json:"value"`
}

func (ExpectValue) Kind() PrimitiveType { return PrimExpectValue }
func (ExpectValue) isPrimitive()        {}

// ExpectContainsText asserts the located element's text content contains
// Value as a substring.
type ExpectContainsText struct {
	Locator Locator `json:"locator"`
	Value   string  `json:"value"`
}

func (ExpectContainsText) Kind() PrimitiveType { return PrimExpectContainsText }
func (ExpectContainsText) isPrimitive()        {}

// ExpectCount asserts the located element query resolves to exactly Count
// matches.
type ExpectCount struct {
	Locator Locator `json:"locator"`
	Count   int     `json:"count"`
}

func (ExpectCount) Kind() PrimitiveType { return PrimExpectCount }
func (ExpectCount) isPrimitive()        {}

// ExpectURL asserts the page URL matches Pattern.
type ExpectURL struct {
	Pattern string `json:"pattern"`
}

func (ExpectURL) Kind() PrimitiveType { return PrimExpectURL }
func (ExpectURL) isPrimitive()        {}

// ExpectTitle asserts the document title equals Title.
type ExpectTitle struct {
	Title string `json:"title"`
}

func (ExpectTitle) Kind() PrimitiveType { return PrimExpectTitle }
func (ExpectTitle) isPrimitive()        {}

// ExpectToast asserts a toast/notification of ToastType appeared, optionally
// carrying Message text.
type ExpectToast struct {
	ToastType string `json:"toast_type"`
	Message   string `json:"message,omitempty"`
}

func (ExpectToast) Kind() PrimitiveType { return PrimExpectToast }
func (ExpectToast) isPrimitive()        {}
