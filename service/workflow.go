package service

import (
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"
)

// Mesin status dokumen. Transisi di luar tabel = InvalidTransitionError;
// status terminal SPB (COMPLETED/CANCELLED) tidak punya entri sama sekali.

var spbTransisi = map[models.SPBStatus][]models.SPBStatus{
	models.SPBAwaitingRelease: {models.SPBCompleted, models.SPBCancelled},
	// dibuka lagi saat SPPB-nya dihapus
	models.SPBCompleted: {models.SPBAwaitingRelease},
}

var sppbTransisi = map[models.SPPBStatus][]models.SPPBStatus{
	models.SPPBAwaitingHandover: {models.SPPBCompleted},
	// dibuka lagi saat BAST keluar dihapus
	models.SPPBCompleted: {models.SPPBAwaitingHandover},
}

func PastikanSPBTransisi(spb *models.SPB, target models.SPBStatus, aksi string) error {
	for _, t := range spbTransisi[spb.Status] {
		if t == target {
			return nil
		}
	}
	return &utils.InvalidTransitionError{
		Dokumen: "SPB " + spb.Nomor,
		Status:  string(spb.Status),
		Aksi:    aksi,
	}
}

func PastikanSPPBTransisi(sppb *models.SPPB, target models.SPPBStatus, aksi string) error {
	for _, t := range sppbTransisi[sppb.Status] {
		if t == target {
			return nil
		}
	}
	return &utils.InvalidTransitionError{
		Dokumen: "SPPB " + sppb.Nomor,
		Status:  string(sppb.Status),
		Aksi:    aksi,
	}
}
