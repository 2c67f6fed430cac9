package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveCodecRoundTripsLocatorAndValue(t *testing.T) {
	prims := []Primitive{
		Click{Locator: Locator{Strategy: StrategyLabel, Value: "Accept"}},
		Fill{
			Locator: Locator{Strategy: StrategyRole, Value: "textbox", Options: &LocatorOptions{Name: "Email", Exact: true}},
			Value:   ValueSpec{Type: ValueActor, Value: "email"},
		},
		ExpectToast{ToastType: "success", Message: "Saved"},
		Press{Key: "Enter"},
	}
	for _, p := range prims {
		data, err := MarshalPrimitive(p)
		require.NoError(t, err)
		got, err := UnmarshalPrimitive(p.Kind(), data)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}

func TestPrimitiveCodecRoundTripsCallModuleArgs(t *testing.T) {
	p := CallModule{
		Module: "auth",
		Method: "loginAs",
		Args:   IRObject{"actor": IRString("admin"), "attempts": IRInt(2)},
	}
	data, err := MarshalPrimitive(p)
	require.NoError(t, err)
	got, err := UnmarshalPrimitive(PrimCallModule, data)
	require.NoError(t, err)

	cm, ok := got.(CallModule)
	require.True(t, ok)
	assert.Equal(t, p.Module, cm.Module)
	assert.Equal(t, p.Method, cm.Method)
	assert.Equal(t, IRString("admin"), cm.Args["actor"])
	assert.Equal(t, IRInt(2), cm.Args["attempts"])
}

func TestUnmarshalPrimitiveUnknownTypeErrors(t *testing.T) {
	_, err := UnmarshalPrimitive("teleport", []byte(`{}`))
	require.Error(t, err)
}
