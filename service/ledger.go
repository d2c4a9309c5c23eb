package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MutasiInput adalah satu permintaan perubahan stok ke ledger.
type MutasiInput struct {
	BarangID      uint
	Kind          models.MutasiKind
	QtyMasuk      int64
	QtyKeluar     int64
	Tanggal       time.Time
	RefNomor      string
	SourceTag     string
	Keterangan    string
	CorrelationID string
}

// ItemLocker menentukan disiplin penguncian baris barang saat mutasi stok.
// Logika bisnis di StokLedger tidak peduli lock macam apa yang dipakai.
type ItemLocker interface {
	Fetch(tx *gorm.DB, barangID uint) (*models.Barang, error)
	UpdateStok(tx *gorm.DB, b *models.Barang, stokBaru int64) error
}

// RowLock memakai SELECT ... FOR UPDATE. Default produksi (postgres).
type RowLock struct{}

func (RowLock) Fetch(tx *gorm.DB, barangID uint) (*models.Barang, error) {
	var b models.Barang
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, barangID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (RowLock) UpdateStok(tx *gorm.DB, b *models.Barang, stokBaru int64) error {
	return tx.Model(&models.Barang{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{"stok": stokBaru, "versi": b.Versi + 1}).Error
}

// OptimisticLock membaca tanpa lock dan menulis dengan cek kolom versi.
// Dipakai saat FOR UPDATE tidak tersedia (sqlite di test). Konflik versi
// membatalkan transaksi dengan utils.ErrStaleItem; klien mengirim ulang
// permintaannya.
type OptimisticLock struct{}

func (OptimisticLock) Fetch(tx *gorm.DB, barangID uint) (*models.Barang, error) {
	var b models.Barang
	if err := tx.First(&b, barangID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (OptimisticLock) UpdateStok(tx *gorm.DB, b *models.Barang, stokBaru int64) error {
	res := tx.Model(&models.Barang{}).
		Where("id = ? AND versi = ?", b.ID, b.Versi).
		Updates(map[string]any{"stok": stokBaru, "versi": b.Versi + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrStaleItem
	}
	return nil
}

// StokLedger adalah satu-satunya jalur perubahan Barang.Stok: setiap mutasi
// menulis satu baris StokMutasi (immutable) dan stok baru dalam transaksi
// yang sama, sehingga stok == SUM(netto mutasi) selalu terjaga.
type StokLedger struct {
	locker ItemLocker
}

func NewStokLedger(l ItemLocker) *StokLedger {
	return &StokLedger{locker: l}
}

// Apply menjalankan satu mutasi. Wajib dipanggil di dalam transaksi yang juga
// menulis dokumen sumbernya. Mengembalikan saldo baru.
func (l *StokLedger) Apply(tx *gorm.DB, in MutasiInput) (int64, error) {
	switch in.Kind {
	case models.MutasiIN:
		if in.QtyMasuk <= 0 || in.QtyKeluar != 0 {
			return 0, fmt.Errorf("mutasi IN butuh qty_masuk > 0 tanpa qty_keluar")
		}
	case models.MutasiOUT:
		if in.QtyKeluar <= 0 || in.QtyMasuk != 0 {
			return 0, fmt.Errorf("mutasi OUT butuh qty_keluar > 0 tanpa qty_masuk")
		}
	case models.MutasiAdjustment:
		// tepat satu arah yang terisi
		if (in.QtyMasuk == 0) == (in.QtyKeluar == 0) || in.QtyMasuk < 0 || in.QtyKeluar < 0 {
			return 0, fmt.Errorf("mutasi ADJUSTMENT butuh tepat satu dari qty_masuk/qty_keluar")
		}
	default:
		return 0, fmt.Errorf("kind mutasi tidak dikenal: %s", in.Kind)
	}

	b, err := l.locker.Fetch(tx, in.BarangID)
	if err != nil {
		return 0, err
	}

	stokBaru := b.Stok + in.QtyMasuk - in.QtyKeluar
	if stokBaru < 0 {
		return 0, &utils.InsufficientStockError{
			NamaBarang: b.Nama,
			Stok:       b.Stok,
			Butuh:      in.QtyKeluar,
		}
	}

	if err := l.locker.UpdateStok(tx, b, stokBaru); err != nil {
		return 0, err
	}

	tanggal := in.Tanggal
	if tanggal.IsZero() {
		tanggal = time.Now().UTC()
	}
	m := models.StokMutasi{
		BarangID:      in.BarangID,
		Tanggal:       tanggal,
		Kind:          in.Kind,
		QtyMasuk:      in.QtyMasuk,
		QtyKeluar:     in.QtyKeluar,
		Saldo:         stokBaru,
		RefNomor:      in.RefNomor,
		SourceTag:     in.SourceTag,
		CorrelationID: in.CorrelationID,
		Keterangan:    in.Keterangan,
	}
	if err := tx.Create(&m).Error; err != nil {
		return 0, err
	}
	return stokBaru, nil
}
