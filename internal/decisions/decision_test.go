package decisions

import (
	"errors"
	"net/http"
	"testing"

	"github.com/arbiterhq/arbiter/pkg/repository"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cmd  RecordCommand
		want error
	}{
		{
			"ai verdict",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "pay half each", Confidence: 0.8},
			nil,
		},
		{
			"human verdict",
			RecordCommand{ArbiterType: ArbiterHuman, DecisionText: "claim dismissed", Confidence: 0.5},
			nil,
		},
		{
			"zero confidence is inclusive",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "unclear", Confidence: 0},
			nil,
		},
		{
			"full confidence is inclusive",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "certain", Confidence: 1},
			nil,
		},
		{
			"confidence above one",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "overshoot", Confidence: 1.5},
			ErrInvalidConfidence,
		},
		{
			"negative confidence",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "undershoot", Confidence: -0.1},
			ErrInvalidConfidence,
		},
		{
			"unknown arbiter type",
			RecordCommand{ArbiterType: "panel", DecisionText: "majority rules", Confidence: 0.5},
			ErrInvalidArbiter,
		},
		{
			"blank text",
			RecordCommand{ArbiterType: ArbiterAI, DecisionText: "   ", Confidence: 0.5},
			ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validate(tt.cmd); !errors.Is(err, tt.want) {
				t.Errorf("validate: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrNotFound, http.StatusNotFound},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"invalid confidence", ErrInvalidConfidence, http.StatusBadRequest},
		{"constraint violation", repository.ErrConstraint, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v): got %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
