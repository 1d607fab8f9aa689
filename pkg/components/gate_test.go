package components

import "testing"

func TestGateOperation_String(t *testing.T) {
	tests := []struct {
		op   GateOperation
		want string
	}{
		{GateOperation{Type: GateAdd, Value: 6}, "+6"},
		{GateOperation{Type: GateSubtract, Value: 3}, "-3"},
		{GateOperation{Type: GateMultiply, Value: 2}, "x2"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}

func TestGateOperation_IsPositive(t *testing.T) {
	if !(GateOperation{Type: GateAdd}).IsPositive() {
		t.Error("Add should be positive")
	}
	if !(GateOperation{Type: GateMultiply}).IsPositive() {
		t.Error("Multiply should be positive")
	}
	if (GateOperation{Type: GateSubtract}).IsPositive() {
		t.Error("Subtract should not be positive")
	}
}
