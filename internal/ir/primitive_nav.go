package ir

// Goto navigates the page to an absolute or relative URL.
type Goto struct {
	URL         string `json:"url"`
	WaitForLoad bool   `json:"wait_for_load,omitempty"`
}

func (Goto) Kind() PrimitiveType { return PrimGoto }
func (Goto) isPrimitive()        {}

// Reload reloads the current page.
type Reload struct{}

func (Reload) Kind() PrimitiveType { return PrimReload }
func (Reload) isPrimitive()        {}

// GoBack navigates one entry back in session history.
type GoBack struct{}

func (GoBack) Kind() PrimitiveType { return PrimGoBack }
func (GoBack) isPrimitive()        {}

// GoForward navigates one entry forward in session history.
type GoForward struct{}

func (GoForward) Kind() PrimitiveType { return PrimGoForward }
func (GoForward) isPrimitive()        {}

// WaitForURL blocks until the page URL matches pattern.
type WaitForURL struct {
	Pattern string `json:"pattern"`
}

func (WaitForURL) Kind() PrimitiveType { return PrimWaitForURL }
func (WaitForURL) isPrimitive()        {}

// WaitForResponse blocks until a network response matching urlPattern is
// observed.
type WaitForResponse struct {
	URLPattern string `json:"url_pattern"`
}

func (WaitForResponse) Kind() PrimitiveType { return PrimWaitForResponse }
func (WaitForResponse) isPrimitive()        {}

// WaitForLoadingComplete blocks until the application's loading indicator
// (spinner, skeleton) has cleared.
type WaitForLoadingComplete struct{}

func (WaitForLoadingComplete) Kind() PrimitiveType { return PrimWaitForLoadingComplete }
func (WaitForLoadingComplete) isPrimitive()        {}

// WaitForVisible blocks until the located element is visible.
type WaitForVisible struct {
	Locator   Locator `json:"locator"`
	TimeoutMS int     `json:"timeout_ms,omitempty"`
}

func (WaitForVisible) Kind() PrimitiveType { return PrimWaitForVisible }
func (WaitForVisible) isPrimitive()        {}

// WaitForHidden blocks until the located element is hidden or detached.
type WaitForHidden struct {
	Locator   Locator `json:"locator"`
	TimeoutMS int     `json:"timeout_ms,omitempty"`
}

func (WaitForHidden) Kind() PrimitiveType { return PrimWaitForHidden }
func (WaitForHidden) isPrimitive()        {}

// WaitForTimeout blocks unconditionally for the given duration. Step mappers
// should prefer a signal-based wait; this exists for hints that explicitly
// request it.
type WaitForTimeout struct {
	MS int `json:"ms"`
}

func (WaitForTimeout) Kind() PrimitiveType { return PrimWaitForTimeout }
func (WaitForTimeout) isPrimitive()        {}

// WaitForNetworkIdle blocks until no network activity has been observed for
// the runner's idle window.
type WaitForNetworkIdle struct {
	TimeoutMS int `json:"timeout_ms,omitempty"`
}

func (WaitForNetworkIdle) Kind() PrimitiveType { return PrimWaitForNetworkIdle }
func (WaitForNetworkIdle) isPrimitive()        {}
