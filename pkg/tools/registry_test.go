package tools

import (
	"strings"
	"testing"
)

func bookingOp() Operation {
	return Operation{
		Name:          "create_appointment",
		Description:   "Book a new appointment",
		Method:        "POST",
		Endpoint:      "/appointments",
		SideEffecting: true,
		Params: []ParamSpec{
			{Name: "patient_name", Type: ParamString, Required: true},
			{Name: "doctor_name", Type: ParamString, Required: true},
			{Name: "date", Type: ParamDate, Required: true},
			{Name: "time", Type: ParamTime, Required: true},
			{Name: "reason", Type: ParamString, Required: false},
			{Name: "duration_minutes", Type: ParamInt, Required: false},
		},
	}
}

func TestValidateParams(t *testing.T) {
	valid := map[string]interface{}{
		"patient_name": "Jane Doe",
		"doctor_name":  "Dr. Smith",
		"date":         "2026-09-01",
		"time":         "10:00",
	}

	tests := []struct {
		name       string
		params     map[string]interface{}
		wantReason string // substring, "" means valid
	}{
		{
			name:   "all required present",
			params: valid,
		},
		{
			name: "optional params accepted",
			params: map[string]interface{}{
				"patient_name":     "Jane Doe",
				"doctor_name":      "Dr. Smith",
				"date":             "2026-09-01",
				"time":             "10:00",
				"reason":           "checkup",
				"duration_minutes": float64(30), // JSON numbers arrive as float64
			},
		},
		{
			name: "missing required parameters listed",
			params: map[string]interface{}{
				"patient_name": "Jane Doe",
			},
			wantReason: "missing required parameter(s): doctor_name, date, time",
		},
		{
			name: "empty string counts as missing",
			params: map[string]interface{}{
				"patient_name": "Jane Doe",
				"doctor_name":  "",
				"date":         "2026-09-01",
				"time":         "10:00",
			},
			wantReason: "missing required parameter(s): doctor_name",
		},
		{
			name: "malformed date",
			params: map[string]interface{}{
				"patient_name": "Jane Doe",
				"doctor_name":  "Dr. Smith",
				"date":         "next friday",
				"time":         "10:00",
			},
			wantReason: "date in YYYY-MM-DD format",
		},
		{
			name: "malformed time",
			params: map[string]interface{}{
				"patient_name": "Jane Doe",
				"doctor_name":  "Dr. Smith",
				"date":         "2026-09-01",
				"time":         "10am",
			},
			wantReason: "time in HH:MM format",
		},
		{
			name: "non-numeric int parameter",
			params: map[string]interface{}{
				"patient_name":     "Jane Doe",
				"doctor_name":      "Dr. Smith",
				"date":             "2026-09-01",
				"time":             "10:00",
				"duration_minutes": "thirty",
			},
			wantReason: "must be a number",
		},
		{
			name: "unknown parameter rejected",
			params: map[string]interface{}{
				"patient_name": "Jane Doe",
				"doctor_name":  "Dr. Smith",
				"date":         "2026-09-01",
				"time":         "10:00",
				"color":        "blue",
			},
			wantReason: "unknown parameter: color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := ValidateParams(bookingOp(), tt.params)
			if tt.wantReason == "" {
				if reason != "" {
					t.Errorf("ValidateParams() = %q, want valid", reason)
				}
				return
			}
			if !strings.Contains(reason, tt.wantReason) {
				t.Errorf("ValidateParams() = %q, want substring %q", reason, tt.wantReason)
			}
		})
	}
}

func TestRegistryLookupAndDescribe(t *testing.T) {
	registry := NewRegistry(bookingOp())

	op, ok := registry.Get("create_appointment")
	if !ok {
		t.Fatal("Get(create_appointment) not found")
	}
	if !op.SideEffecting {
		t.Error("create_appointment should be side-effecting")
	}

	if _, ok := registry.Get("order_pizza"); ok {
		t.Error("Get(order_pizza) should not be found")
	}

	description := registry.Describe()
	for _, want := range []string{"create_appointment", "patient_name", "required"} {
		if !strings.Contains(description, want) {
			t.Errorf("Describe() missing %q:\n%s", want, description)
		}
	}
}
