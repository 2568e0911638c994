package api

import (
	"database/sql"
	"net/http"

	"github.com/fadhilmr/gudang/internal/inventory"
)

// NewRouter creates the API router with all endpoints registered.
func NewRouter(db *sql.DB, jwtSecret string) http.Handler {
	mux := http.NewServeMux()

	svc := inventory.New(db)

	authHandler := &AuthHandler{DB: db, JWTSecret: jwtSecret}
	usersHandler := &UsersHandler{DB: db}
	barangHandler := &BarangHandler{Service: svc}
	reportsHandler := &ReportsHandler{Service: svc}

	authMW := AuthMiddleware(jwtSecret, db)

	// Public: register and login.
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("POST /api/auth/logout", authMW(http.HandlerFunc(authHandler.Logout)))
	mux.Handle("PUT /api/auth/password", authMW(http.HandlerFunc(authHandler.ChangePassword)))

	// Users.
	mux.Handle("GET /api/users", authMW(http.HandlerFunc(usersHandler.List)))

	// Barang lifecycle.
	mux.Handle("GET /api/barang", authMW(http.HandlerFunc(barangHandler.List)))
	mux.Handle("POST /api/barang", authMW(http.HandlerFunc(barangHandler.Create)))
	mux.Handle("GET /api/barang/{id}", authMW(http.HandlerFunc(barangHandler.Get)))
	mux.Handle("PUT /api/barang/{id}", authMW(http.HandlerFunc(barangHandler.Update)))
	mux.Handle("DELETE /api/barang/{id}", authMW(http.HandlerFunc(barangHandler.Delete)))

	// Ledgers.
	mux.Handle("POST /api/barang/{id}/stock", authMW(http.HandlerFunc(barangHandler.AdjustStock)))
	mux.Handle("POST /api/barang/{id}/price", authMW(http.HandlerFunc(barangHandler.AddPrice)))

	// Foto.
	mux.Handle("PUT /api/barang/{id}/foto", authMW(http.HandlerFunc(barangHandler.UploadFoto)))
	mux.Handle("GET /api/barang/{id}/foto", authMW(http.HandlerFunc(barangHandler.GetFoto)))

	// Point-in-time reports.
	mux.Handle("GET /api/reports/stock", authMW(http.HandlerFunc(reportsHandler.Stock)))
	mux.Handle("GET /api/reports/price", authMW(http.HandlerFunc(reportsHandler.Price)))

	return mux
}
