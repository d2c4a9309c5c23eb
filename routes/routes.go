package routes

import (
	"github.com/fhru/sibarkumen-sub000/controllers"
	"github.com/fhru/sibarkumen-sub000/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	api := r.Group("/api")
	{
		api.POST("/login", controllers.Login)

		auth := api.Group("/", middlewares.AuthMiddleware())

		auth.GET("/profile", controllers.Profile)

		// Data master read-only untuk dropdown
		auth.GET("/satuan", controllers.GetAllSatuan)
		auth.GET("/jabatan", controllers.GetAllJabatan)
		auth.GET("/pegawai", controllers.GetAllPegawai)
		auth.GET("/penyedia", controllers.GetAllPenyedia)
		auth.GET("/sumberdana", controllers.GetAllSumberDana)

		barang := auth.Group("/barang")
		{
			barang.GET("/", controllers.GetAllBarang)
			barang.GET("/:id", controllers.GetBarangByID)
			barang.POST("/", middlewares.RequirePerm("BARANG_MASUK"), controllers.CreateBarang)
			barang.PUT("/:id", middlewares.RequirePerm("BARANG_MASUK"), controllers.UpdateBarang)
			barang.DELETE("/:id", middlewares.RequirePerm("BARANG_MASUK"), controllers.DeleteBarang)
			barang.GET("/:id/mutasi", middlewares.RequirePerm("LIHAT_MUTASI"), controllers.GetBarangMutasi)
		}

		barangMasuk := auth.Group("/barangmasuk", middlewares.RequirePerm("BARANG_MASUK"))
		{
			barangMasuk.GET("/", controllers.GetAllBarangMasuk)
			barangMasuk.GET("/:id", controllers.GetBarangMasukByID)
			barangMasuk.POST("/", controllers.CreateBarangMasuk)
			barangMasuk.PUT("/:id", controllers.UpdateBarangMasuk)
			barangMasuk.DELETE("/:id", controllers.DeleteBarangMasuk)
		}

		spb := auth.Group("/spb", middlewares.RequirePerm("SPB"))
		{
			spb.GET("/", controllers.GetAllSPB)
			spb.GET("/:id", controllers.GetSPBByID)
			spb.POST("/", controllers.CreateSPB)
			spb.PUT("/:id", controllers.UpdateSPB)
			spb.POST("/:id/batal", controllers.CancelSPB)
			spb.DELETE("/:id", controllers.DeleteSPB)
		}

		sppb := auth.Group("/sppb", middlewares.RequirePerm("SPPB"))
		{
			sppb.GET("/", controllers.GetAllSPPB)
			sppb.GET("/:id", controllers.GetSPPBByID)
			sppb.POST("/", controllers.CreateSPPB)
			sppb.PUT("/:id", controllers.UpdateSPPB)
			sppb.DELETE("/:id", controllers.DeleteSPPB)
		}

		bast := auth.Group("/bastkeluar", middlewares.RequirePerm("BAST_KELUAR"))
		{
			bast.GET("/", controllers.GetAllBASTKeluar)
			bast.GET("/:id", controllers.GetBASTKeluarByID)
			bast.POST("/", controllers.CreateBASTKeluar)
			bast.PUT("/:id", controllers.UpdateBASTKeluar)
			bast.POST("/:id/print", controllers.PrintBASTKeluar)
			bast.DELETE("/:id", controllers.DeleteBASTKeluar)
		}
	}
}
