package service

import (
	"testing"

	"AttendSheet/internal/sheet"
	"AttendSheet/pkg/errors"
)

func TestMapSheetError(t *testing.T) {
	cases := []struct {
		in   error
		want error
	}{
		{sheet.ErrNotEditable, errors.SheetNotEditable},
		{sheet.ErrCapacityReached, errors.SheetCapacity},
		{sheet.ErrNoEmptyRows, errors.SheetNoEmptyRows},
		{sheet.ErrSaveInProgress, errors.SheetSaveInProgress},
		{sheet.ErrIndexOutOfRange, errors.InvalidRequest},
	}

	for _, tc := range cases {
		if got := mapSheetError(tc.in); got != tc.want {
			t.Errorf("mapSheetError(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestSaveLockKey(t *testing.T) {
	if got := saveLockKey(7, 42); got != "save:7:42" {
		t.Fatalf("saveLockKey(7, 42) = %q", got)
	}
}
