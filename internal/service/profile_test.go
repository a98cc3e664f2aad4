package service

import (
	"testing"

	"AttendSheet/internal/model"
	"AttendSheet/pkg/errors"
)

func TestValidateSignatories(t *testing.T) {
	cases := []struct {
		name        string
		signatories []model.Signatory
		want        error
	}{
		{
			name:        "empty list clears signatories",
			signatories: nil,
			want:        nil,
		},
		{
			name: "single signatory",
			signatories: []model.Signatory{
				{ID: 1, Name: "Maria Santos", Title: "Supervisor"},
			},
			want: nil,
		},
		{
			name: "two signatories in any order",
			signatories: []model.Signatory{
				{ID: 2, Name: "Jose Reyes", Title: "HR Manager"},
				{ID: 1, Name: "Maria Santos", Title: "Supervisor"},
			},
			want: nil,
		},
		{
			name: "more than two rejected",
			signatories: []model.Signatory{
				{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 1, Name: "C"},
			},
			want: errors.SignatoryLimitExceeded,
		},
		{
			name: "slot id out of range",
			signatories: []model.Signatory{
				{ID: 3, Name: "A"},
			},
			want: errors.SignatoryIDInvalid,
		},
		{
			name: "duplicate slot id",
			signatories: []model.Signatory{
				{ID: 1, Name: "A"}, {ID: 1, Name: "B"},
			},
			want: errors.SignatoryIDInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateSignatories(tc.signatories)
			if got != tc.want {
				t.Fatalf("validateSignatories() = %v, want %v", got, tc.want)
			}
		})
	}
}
