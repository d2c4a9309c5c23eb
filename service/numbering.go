package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fhru/sibarkumen-sub000/utils"

	"gorm.io/gorm"
)

// Jenis dokumen bernomor.
const (
	DocBarangMasuk = "BARANG_MASUK"
	DocSPB         = "SPB"
	DocSPPB        = "SPPB"
	DocBASTKeluar  = "BAST_KELUAR"
)

// NomorFormat mendeskripsikan pola nomor satu jenis dokumen. Pola memakai
// placeholder {number} dan {year}, mis. "{number}/SPB/{year}" -> "012/SPB/2026".
type NomorFormat struct {
	Pola string
	Awal int
	Pad  int
}

var nomorFormats = map[string]NomorFormat{
	DocBarangMasuk: {Pola: "{number}/BAST-M/{year}", Awal: 1, Pad: 3},
	DocSPB:         {Pola: "{number}/SPB/{year}", Awal: 1, Pad: 3},
	DocSPPB:        {Pola: "{number}/SPPB/{year}", Awal: 1, Pad: 3},
	DocBASTKeluar:  {Pola: "{number}/BAST-K/{year}", Awal: 1, Pad: 3},
}

var nomorTables = map[string]string{
	DocBarangMasuk: "barang_masuks",
	DocSPB:         "spbs",
	DocSPPB:        "sppbs",
	DocBASTKeluar:  "bast_keluars",
}

// FormatNomor merender pola dengan nomor urut zero-padded dan tahun.
func FormatNomor(f NomorFormat, n int, year int) string {
	num := fmt.Sprintf("%0*d", f.Pad, n)
	out := strings.ReplaceAll(f.Pola, "{number}", num)
	return strings.ReplaceAll(out, "{year}", strconv.Itoa(year))
}

// parseSegmen mengambil isi satu placeholder dengan mencocokkan pola dan
// nomor per segmen "/".
func parseSegmen(pola, nomor, placeholder string) (string, error) {
	ps := strings.Split(pola, "/")
	ns := strings.Split(nomor, "/")
	if len(ps) != len(ns) {
		return "", fmt.Errorf("nomor %q tidak cocok pola %q", nomor, pola)
	}
	for i, p := range ps {
		if p == placeholder {
			return ns[i], nil
		}
	}
	return "", fmt.Errorf("pola %q tanpa %s", pola, placeholder)
}

func parseNomorUrut(pola, nomor string) (int, error) {
	seg, err := parseSegmen(pola, nomor, "{number}")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(seg)
}

// NomorStrategy menghasilkan kandidat nomor dokumen di dalam transaksi yang
// sedang berjalan. Read-then-increment di sini bisa balapan antar transaksi;
// pemanggil WAJIB lewat TxWithNomor yang mengulang saat bentrok unik.
type NomorStrategy interface {
	Generate(tx *gorm.DB) (string, error)
}

// SeriesNomor: cari nomor tertinggi tahun berjalan untuk jenis dokumen ini,
// parse segmen angkanya, tambah satu. Tanpa baris tahun berjalan mulai dari
// nilai awal format.
type SeriesNomor struct {
	JenisDokumen string
	Now          func() time.Time // nil = time.Now
}

func (s SeriesNomor) Generate(tx *gorm.DB) (string, error) {
	f, ok := nomorFormats[s.JenisDokumen]
	if !ok {
		return "", fmt.Errorf("jenis dokumen tanpa format nomor: %s", s.JenisDokumen)
	}
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	year := now.Year()

	like := strings.ReplaceAll(f.Pola, "{number}", "%")
	like = strings.ReplaceAll(like, "{year}", strconv.Itoa(year))

	// length dulu baru lexicographic: aman juga saat nomor melewati lebar pad
	var rows []string
	if err := tx.Table(nomorTables[s.JenisDokumen]).
		Where("nomor LIKE ?", like).
		Order("length(nomor) DESC").
		Order("nomor DESC").
		Limit(1).
		Pluck("nomor", &rows).Error; err != nil {
		return "", err
	}

	n := f.Awal
	if len(rows) > 0 {
		last, err := parseNomorUrut(f.Pola, rows[0])
		if err != nil {
			return "", err
		}
		n = last + 1
	}
	return FormatNomor(f, n, year), nil
}

// TurunanNomor menurunkan nomor dari dokumen asal rantai (segmen nomor+tahun
// sama, prefix beda) supaya dokumen serantai gampang dikorelasikan secara
// visual. Kalau nomor turunan sudah terpakai, atau nomor asal tidak bisa
// diparse, jatuh ke Fallback.
type TurunanNomor struct {
	JenisDokumen string
	DariJenis    string
	DariNomor    string
	Fallback     NomorStrategy
}

func (t TurunanNomor) Generate(tx *gorm.DB) (string, error) {
	src, okSrc := nomorFormats[t.DariJenis]
	dst, okDst := nomorFormats[t.JenisDokumen]
	if !okSrc || !okDst {
		return t.Fallback.Generate(tx)
	}
	n, err := parseNomorUrut(src.Pola, t.DariNomor)
	if err != nil {
		return t.Fallback.Generate(tx)
	}
	tahunSeg, err := parseSegmen(src.Pola, t.DariNomor, "{year}")
	if err != nil {
		return t.Fallback.Generate(tx)
	}
	year, err := strconv.Atoi(tahunSeg)
	if err != nil {
		return t.Fallback.Generate(tx)
	}

	kandidat := FormatNomor(dst, n, year)
	var cnt int64
	if err := tx.Table(nomorTables[t.JenisDokumen]).
		Where("nomor = ?", kandidat).
		Count(&cnt).Error; err != nil {
		return "", err
	}
	if cnt > 0 {
		return t.Fallback.Generate(tx)
	}
	return kandidat, nil
}

// TxWithNomor adalah transaction boundary untuk aksi create dokumen bernomor:
// generate nomor + fn dalam satu transaksi, ulangi dengan nomor baru saat
// insert bentrok unik, maksimal tiga percobaan. Error lain diteruskan apa
// adanya (rollback penuh).
func TxWithNomor(db *gorm.DB, jenis string, strat NomorStrategy, fn func(tx *gorm.DB, nomor string) error) error {
	const maxPercobaan = 3
	var lastErr error
	for i := 0; i < maxPercobaan; i++ {
		lastErr = db.Transaction(func(tx *gorm.DB) error {
			nomor, err := strat.Generate(tx)
			if err != nil {
				return err
			}
			return fn(tx, nomor)
		})
		if lastErr == nil {
			return nil
		}
		if !utils.IsUniqueViolation(lastErr) {
			return lastErr
		}
	}
	return &utils.NumberingConflictError{JenisDokumen: jenis, Percobaan: maxPercobaan}
}
