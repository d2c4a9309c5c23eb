package service

import (
	"testing"

	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/stretchr/testify/require"
)

func TestTransisiSPB(t *testing.T) {
	cases := []struct {
		dari  models.SPBStatus
		ke    models.SPBStatus
		boleh bool
	}{
		{models.SPBAwaitingRelease, models.SPBCompleted, true},
		{models.SPBAwaitingRelease, models.SPBCancelled, true},
		{models.SPBCompleted, models.SPBAwaitingRelease, true},
		{models.SPBCompleted, models.SPBCancelled, false},
		{models.SPBCancelled, models.SPBAwaitingRelease, false},
		{models.SPBCancelled, models.SPBCompleted, false},
	}
	for _, cs := range cases {
		spb := &models.SPB{Nomor: "001/SPB/2026", Status: cs.dari}
		err := PastikanSPBTransisi(spb, cs.ke, "uji")
		if cs.boleh {
			require.NoError(t, err, "%s -> %s", cs.dari, cs.ke)
			continue
		}
		var invalid *utils.InvalidTransitionError
		require.ErrorAs(t, err, &invalid, "%s -> %s", cs.dari, cs.ke)
		require.Equal(t, string(cs.dari), invalid.Status)
	}
}

func TestTransisiSPPB(t *testing.T) {
	cases := []struct {
		dari  models.SPPBStatus
		ke    models.SPPBStatus
		boleh bool
	}{
		{models.SPPBAwaitingHandover, models.SPPBCompleted, true},
		{models.SPPBCompleted, models.SPPBAwaitingHandover, true},
		{models.SPPBAwaitingHandover, models.SPPBAwaitingHandover, false},
		{models.SPPBCompleted, models.SPPBCompleted, false},
	}
	for _, cs := range cases {
		sppb := &models.SPPB{Nomor: "001/SPPB/2026", Status: cs.dari}
		err := PastikanSPPBTransisi(sppb, cs.ke, "uji")
		if cs.boleh {
			require.NoError(t, err, "%s -> %s", cs.dari, cs.ke)
			continue
		}
		var invalid *utils.InvalidTransitionError
		require.ErrorAs(t, err, &invalid, "%s -> %s", cs.dari, cs.ke)
	}
}
