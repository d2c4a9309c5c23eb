package utils

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func failSebagai(t *testing.T, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	fn(c)
	return w
}

func TestFailErrorPemetaanStatus(t *testing.T) {
	cases := []struct {
		nama   string
		err    error
		status int
	}{
		{"unauthorized", ErrUnauthorized, 401},
		{"not found", ErrNotFound, 404},
		{"validasi terbungkus", fmt.Errorf("%w: qty melebihi yang disetujui", ErrValidasi), 400},
		{"baris basi", ErrStaleItem, 409},
		{"transisi salah", &InvalidTransitionError{Dokumen: "SPB 001/SPB/2026", Status: "COMPLETED", Aksi: "dihapus"}, 409},
		{"stok kurang", &InsufficientStockError{NamaBarang: "Kertas A4", Stok: 2, Butuh: 5}, 400},
		{"penomoran habis", &NumberingConflictError{JenisDokumen: "SPB", Percobaan: 3}, 500},
		{"error tak dikenal", fmt.Errorf("koneksi putus"), 500},
	}
	for _, tc := range cases {
		t.Run(tc.nama, func(t *testing.T) {
			w := failSebagai(t, func(c *gin.Context) { FailError(c, tc.err) })
			require.Equal(t, tc.status, w.Code)
			require.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

func TestFailBindSebutFieldYangSalah(t *testing.T) {
	type input struct {
		PemohonID uint  `binding:"required"`
		Qty       int64 `binding:"required,gt=0"`
	}
	v := validator.New()
	v.SetTagName("binding") // sama seperti binding gin
	err := v.Struct(input{})
	require.Error(t, err)

	w := failSebagai(t, func(c *gin.Context) { FailBind(c, err) })
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "PemohonID")
	require.Contains(t, w.Body.String(), "required")
}

func TestFailBindErrorNonValidator(t *testing.T) {
	w := failSebagai(t, func(c *gin.Context) { FailBind(c, fmt.Errorf("unexpected EOF")) })
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "Payload tidak valid")
}
