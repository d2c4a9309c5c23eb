package service

import (
	"testing"
	"time"

	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func tahun(y int) func() time.Time {
	return func() time.Time {
		return time.Date(y, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
}

func TestFormatNomor(t *testing.T) {
	f := nomorFormats[DocSPB]
	require.Equal(t, "001/SPB/2026", FormatNomor(f, 1, 2026))
	require.Equal(t, "012/SPB/2026", FormatNomor(f, 12, 2026))
	// lewat lebar pad: nomor memanjang, tidak terpotong
	require.Equal(t, "1234/SPB/2026", FormatNomor(f, 1234, 2026))
}

func TestSeriesNomorMulaiDariAwal(t *testing.T) {
	db := newTestDB(t)

	nomor, err := SeriesNomor{JenisDokumen: DocSPB, Now: tahun(2026)}.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "001/SPB/2026", nomor)
}

func TestSeriesNomorLanjutDariTertinggi(t *testing.T) {
	db := newTestDB(t)
	for _, n := range []string{"001/SPB/2026", "004/SPB/2026", "002/SPB/2026"} {
		require.NoError(t, db.Create(&models.SPB{
			Nomor: n, Tanggal: time.Now(), Status: models.SPBAwaitingRelease,
		}).Error)
	}

	nomor, err := SeriesNomor{JenisDokumen: DocSPB, Now: tahun(2026)}.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "005/SPB/2026", nomor)
}

// Nomor melewati lebar pad harus tetap dibaca sebagai yang tertinggi.
func TestSeriesNomorLewatLebarPad(t *testing.T) {
	db := newTestDB(t)
	for _, n := range []string{"999/SPB/2026", "1000/SPB/2026"} {
		require.NoError(t, db.Create(&models.SPB{
			Nomor: n, Tanggal: time.Now(), Status: models.SPBAwaitingRelease,
		}).Error)
	}

	nomor, err := SeriesNomor{JenisDokumen: DocSPB, Now: tahun(2026)}.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "1001/SPB/2026", nomor)
}

// Seri nomor di-reset per tahun: dokumen tahun lalu tidak dihitung.
func TestSeriesNomorTerpisahPerTahun(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.SPB{
		Nomor: "017/SPB/2025", Tanggal: time.Now(), Status: models.SPBCompleted,
	}).Error)

	nomor, err := SeriesNomor{JenisDokumen: DocSPB, Now: tahun(2026)}.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "001/SPB/2026", nomor)
}

func TestTurunanNomorDariSPB(t *testing.T) {
	db := newTestDB(t)

	strat := TurunanNomor{
		JenisDokumen: DocBASTKeluar,
		DariJenis:    DocSPB,
		DariNomor:    "007/SPB/2026",
		Fallback:     SeriesNomor{JenisDokumen: DocBASTKeluar, Now: tahun(2026)},
	}
	nomor, err := strat.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "007/BAST-K/2026", nomor)
}

func TestTurunanNomorJatuhKeFallback(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.BASTKeluar{
		Nomor: "007/BAST-K/2026", Tanggal: time.Now(), SPPBID: 99,
	}).Error)

	strat := TurunanNomor{
		JenisDokumen: DocBASTKeluar,
		DariJenis:    DocSPB,
		DariNomor:    "007/SPB/2026",
		Fallback:     SeriesNomor{JenisDokumen: DocBASTKeluar, Now: tahun(2026)},
	}
	nomor, err := strat.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "008/BAST-K/2026", nomor)
}

func TestTurunanNomorAsalTakTerbacaPakaiFallback(t *testing.T) {
	db := newTestDB(t)

	strat := TurunanNomor{
		JenisDokumen: DocBASTKeluar,
		DariJenis:    DocSPB,
		DariNomor:    "nomor-aneh",
		Fallback:     SeriesNomor{JenisDokumen: DocBASTKeluar, Now: tahun(2026)},
	}
	nomor, err := strat.Generate(db)
	require.NoError(t, err)
	require.Equal(t, "001/BAST-K/2026", nomor)
}

type nomorTetap string

func (n nomorTetap) Generate(*gorm.DB) (string, error) { return string(n), nil }

func TestTxWithNomorSukses(t *testing.T) {
	db := newTestDB(t)

	err := TxWithNomor(db, DocSPB, nomorTetap("001/SPB/2026"), func(tx *gorm.DB, nomor string) error {
		return tx.Create(&models.SPB{Nomor: nomor, Tanggal: time.Now(), Status: models.SPBAwaitingRelease}).Error
	})
	require.NoError(t, err)

	var cnt int64
	db.Model(&models.SPB{}).Count(&cnt)
	require.EqualValues(t, 1, cnt)
}

type nomorBergilir struct {
	urut []string
	idx  *int
}

func (n nomorBergilir) Generate(*gorm.DB) (string, error) {
	nomor := n.urut[*n.idx]
	*n.idx++
	return nomor, nil
}

// Dua penulis berebut nomor yang sama: yang kalah insert mengulang dan commit
// dengan nomor berikutnya yang berbeda, tanpa error sampai ke pemanggil.
func TestTxWithNomorRetrySekaliLaluSukses(t *testing.T) {
	db := newTestDB(t)
	// penulis lain sudah commit 001 duluan
	require.NoError(t, db.Create(&models.SPB{
		Nomor: "001/SPB/2026", Tanggal: time.Now(), Status: models.SPBAwaitingRelease,
	}).Error)

	idx := 0
	percobaan := 0
	strat := nomorBergilir{urut: []string{"001/SPB/2026", "002/SPB/2026"}, idx: &idx}
	err := TxWithNomor(db, DocSPB, strat, func(tx *gorm.DB, nomor string) error {
		percobaan++
		return tx.Create(&models.SPB{Nomor: nomor, Tanggal: time.Now(), Status: models.SPBAwaitingRelease}).Error
	})
	require.NoError(t, err)
	require.Equal(t, 2, percobaan)

	var nomors []string
	require.NoError(t, db.Model(&models.SPB{}).Order("nomor ASC").Pluck("nomor", &nomors).Error)
	require.Equal(t, []string{"001/SPB/2026", "002/SPB/2026"}, nomors)
}

// Bentrok unik terus-menerus: berhenti setelah tiga percobaan dengan error
// penomoran, bukan loop tak berujung.
func TestTxWithNomorRetryHabis(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.SPB{
		Nomor: "001/SPB/2026", Tanggal: time.Now(), Status: models.SPBAwaitingRelease,
	}).Error)

	percobaan := 0
	err := TxWithNomor(db, DocSPB, nomorTetap("001/SPB/2026"), func(tx *gorm.DB, nomor string) error {
		percobaan++
		return tx.Create(&models.SPB{Nomor: nomor, Tanggal: time.Now(), Status: models.SPBAwaitingRelease}).Error
	})

	var conflict *utils.NumberingConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, DocSPB, conflict.JenisDokumen)
	require.Equal(t, 3, percobaan)
}

// Error non-unik tidak boleh di-retry.
func TestTxWithNomorErrorLainLangsungKeluar(t *testing.T) {
	db := newTestDB(t)

	percobaan := 0
	err := TxWithNomor(db, DocSPB, nomorTetap("001/SPB/2026"), func(tx *gorm.DB, nomor string) error {
		percobaan++
		return utils.ErrNotFound
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
	require.Equal(t, 1, percobaan)
}
