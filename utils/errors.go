package utils

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUnauthorized = errors.New("tidak punya izin untuk aksi ini")
	ErrNotFound     = errors.New("data tidak ditemukan")
	ErrValidasi     = errors.New("data tidak valid")

	// ErrStaleItem dikembalikan strategi optimistic lock saat baris barang
	// berubah di antara baca dan tulis. Transaksi batal utuh dan sampai ke
	// klien sebagai konflik (409); permintaan aman dikirim ulang.
	ErrStaleItem = errors.New("baris barang berubah, ulangi permintaan")
)

// InsufficientStockError: stok hasil operasi akan negatif.
type InsufficientStockError struct {
	NamaBarang string
	Stok       int64
	Butuh      int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stok %s tidak cukup (stok=%d, butuh=%d)", e.NamaBarang, e.Stok, e.Butuh)
}

// InvalidTransitionError: aksi workflow pada dokumen dengan status yang salah.
type InvalidTransitionError struct {
	Dokumen string
	Status  string
	Aksi    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s berstatus %s, tidak bisa %s", e.Dokumen, e.Status, e.Aksi)
}

// NumberingConflictError: retry penomoran habis tanpa dapat nomor unik.
// Ini fatal: menandakan contention tak wajar pada generator nomor.
type NumberingConflictError struct {
	JenisDokumen string
	Percobaan    int
}

func (e *NumberingConflictError) Error() string {
	return fmt.Sprintf("gagal dapat nomor %s unik setelah %d percobaan", e.JenisDokumen, e.Percobaan)
}

// IsUniqueViolation mengenali bentrok unique constraint dari driver postgres
// (SQLSTATE 23505) maupun hasil translate error gorm (dipakai di test sqlite).
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
