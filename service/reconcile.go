package service

import (
	"sort"
	"time"

	"github.com/fhru/sibarkumen-sub000/models"

	"gorm.io/gorm"
)

// Arah dokumen terhadap stok: BAST masuk menambah, BAST keluar mengurangi.
type Arah int

const (
	ArahMasuk Arah = iota
	ArahKeluar
)

// LineQty adalah proyeksi minimum satu baris item dokumen.
type LineQty struct {
	BarangID uint
	Qty      int64
}

// MutasiRef membawa atribut bersama semua mutasi dari satu aksi dokumen.
type MutasiRef struct {
	Nomor         string
	SourceTag     string
	Keterangan    string
	CorrelationID string
	Tanggal       time.Time
}

// SumQtyPerBarang menjumlahkan qty per barang (satu barang bisa muncul di
// lebih dari satu baris dokumen).
func SumQtyPerBarang(lines []LineQty) map[uint]int64 {
	sum := make(map[uint]int64, len(lines))
	for _, ln := range lines {
		sum[ln.BarangID] += ln.Qty
	}
	return sum
}

// HitungDelta menghasilkan selisih qty per barang antara isi dokumen lama dan
// baru. Barang dengan delta nol dibuang: edit yang tidak mengubah qty tidak
// boleh menghasilkan mutasi.
func HitungDelta(lama, baru map[uint]int64) map[uint]int64 {
	delta := make(map[uint]int64)
	for id, q := range baru {
		delta[id] = q - lama[id]
	}
	for id, q := range lama {
		if _, ada := baru[id]; !ada {
			delta[id] = -q
		}
	}
	for id, d := range delta {
		if d == 0 {
			delete(delta, id)
		}
	}
	return delta
}

// ApplyDelta menerapkan hasil HitungDelta ke ledger: satu mutasi netto per
// barang yang berubah, bukan reverse-semua + replay-semua. Delta searah
// dokumen memakai kind asli (IN/OUT), delta berlawanan arah memakai
// ADJUSTMENT yang mengembalikan stok.
//
// Barang diproses urut id supaya dua edit konkuren mengunci baris dengan
// urutan sama (hindari deadlock).
func (l *StokLedger) ApplyDelta(tx *gorm.DB, arah Arah, delta map[uint]int64, ref MutasiRef) error {
	ids := make([]uint, 0, len(delta))
	for id := range delta {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		d := delta[id]
		in := MutasiInput{
			BarangID:      id,
			Tanggal:       ref.Tanggal,
			RefNomor:      ref.Nomor,
			SourceTag:     ref.SourceTag,
			Keterangan:    ref.Keterangan,
			CorrelationID: ref.CorrelationID,
		}
		switch {
		case arah == ArahMasuk && d > 0:
			in.Kind = models.MutasiIN
			in.QtyMasuk = d
		case arah == ArahMasuk && d < 0:
			in.Kind = models.MutasiAdjustment
			in.QtyKeluar = -d
		case arah == ArahKeluar && d > 0:
			in.Kind = models.MutasiOUT
			in.QtyKeluar = d
		default: // ArahKeluar, d < 0
			in.Kind = models.MutasiAdjustment
			in.QtyMasuk = -d
		}
		if _, err := l.Apply(tx, in); err != nil {
			return err
		}
	}
	return nil
}

// ReverseAll membalik seluruh efek stok dokumen saat dihapus: satu entri
// ADJUSTMENT per baris item, arah kebalikan dokumen.
func (l *StokLedger) ReverseAll(tx *gorm.DB, arah Arah, lines []LineQty, ref MutasiRef) error {
	for _, ln := range lines {
		in := MutasiInput{
			BarangID:      ln.BarangID,
			Kind:          models.MutasiAdjustment,
			Tanggal:       ref.Tanggal,
			RefNomor:      ref.Nomor,
			SourceTag:     ref.SourceTag,
			Keterangan:    ref.Keterangan,
			CorrelationID: ref.CorrelationID,
		}
		if arah == ArahKeluar {
			// dokumen keluar dihapus -> stok kembali naik
			in.QtyMasuk = ln.Qty
		} else {
			// dokumen masuk dihapus -> stok turun; bisa gagal InsufficientStock
			in.QtyKeluar = ln.Qty
		}
		if _, err := l.Apply(tx, in); err != nil {
			return err
		}
	}
	return nil
}
