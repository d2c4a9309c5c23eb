package main

import (
	"os"

	"github.com/fhru/sibarkumen-sub000/config"
	"github.com/fhru/sibarkumen-sub000/models"
	"github.com/fhru/sibarkumen-sub000/routes"
	"github.com/fhru/sibarkumen-sub000/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	config.ConnectDB()
	config.ConnectRedis()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.UserPermission{},
		&models.Satuan{},
		&models.Jabatan{},
		&models.Pegawai{},
		&models.Penyedia{},
		&models.SumberDana{},
		&models.Barang{},
		&models.StokMutasi{},
		&models.BarangMasuk{},
		&models.BarangMasukItem{},
		&models.SPB{},
		&models.SPBItem{},
		&models.SPPB{},
		&models.SPPBItem{},
		&models.BASTKeluar{},
		&models.BASTKeluarItem{},
	)

	config.SeedPermissions()

	if s := os.Getenv("JWT_SECRET"); s != "" {
		utils.Secret = []byte(s)
	}

	r := gin.Default()
	routes.SetupRoutes(r)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Sibarkumen API is running"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	_ = r.Run(":" + port)
}
