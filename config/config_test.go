package config

import (
	"errors"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "JWT_TTL", "UPLOAD_MAX_BYTES", "CLOUDINARY_FOLDER", "API_AUTH_REQUIRED", "DASHBOARD_DIR", "LOGIN_URL"} {
		t.Setenv(key, "")
	}
	cfg := FromEnv()

	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DBDriver != "mysql" {
		t.Fatalf("driver = %q", cfg.DBDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("jwt ttl = %v", cfg.JWTTTL)
	}
	if cfg.UploadMaxBytes != 5*1024*1024 {
		t.Fatalf("upload max = %d", cfg.UploadMaxBytes)
	}
	if cfg.CloudinaryFolder != "travel-dashboard" {
		t.Fatalf("folder = %q", cfg.CloudinaryFolder)
	}
	if cfg.APIAuthRequired {
		t.Fatalf("api auth should be off by default")
	}
	if cfg.DashboardDir != "" || cfg.LoginURL != "/login" {
		t.Fatalf("dashboard dir = %q, login url = %q", cfg.DashboardDir, cfg.LoginURL)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("API_AUTH_REQUIRED", "true")
	t.Setenv("CORS_ORIGINS", "https://admin.voyra.test, ,https://voyra.test")

	cfg := FromEnv()
	if cfg.Port != "9090" || cfg.DBDriver != "sqlite" || cfg.JWTTTL != 90*time.Minute || !cfg.APIAuthRequired {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	origins := cfg.CORSOriginList()
	if len(origins) != 2 || origins[0] != "https://admin.voyra.test" || origins[1] != "https://voyra.test" {
		t.Fatalf("origins = %v", origins)
	}
}

func TestCORSOriginListDefaultsToAny(t *testing.T) {
	if got := (Config{}).CORSOriginList(); len(got) != 1 || got[0] != "*" {
		t.Fatalf("origins = %v", got)
	}
}

func TestMySQLDSNFromURL(t *testing.T) {
	dsn, err := mysqlDSNFromURL("mysql://root:pw@db.internal:3307/voyra_db")
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	want := "root:pw@tcp(db.internal:3307)/voyra_db?charset=utf8mb4&loc=Local&parseTime=True"
	if dsn != want {
		t.Fatalf("dsn = %q, want %q", dsn, want)
	}

	if _, err := mysqlDSNFromURL("mysql://root:pw@db.internal"); err == nil {
		t.Fatalf("missing database name should fail")
	}
}

func TestResolveMySQLDSNFromParts(t *testing.T) {
	cfg := Config{DBUser: "u", DBPass: "p", DBHost: "h", DBPort: "3306", DBName: "n"}
	dsn, err := resolveMySQLDSN(cfg)
	if err != nil {
		t.Fatalf("dsn: %v", err)
	}
	if dsn != "u:p@tcp(h:3306)/n?charset=utf8mb4&parseTime=True&loc=Local" {
		t.Fatalf("dsn = %q", dsn)
	}
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	if _, err := Dialector(Config{DBDriver: "oracle"}); err == nil {
		t.Fatalf("expected error")
	}
	d, err := Dialector(Config{DBDriver: "sqlite"})
	if err != nil || d.Name() != "sqlite" {
		t.Fatalf("sqlite dialector: %v %v", d, err)
	}
}

func TestConnectDatabaseSQLiteSeedsAdmin(t *testing.T) {
	cfg := Config{
		DBDriver:       "sqlite",
		DatabaseURL:    "file::memory:?_pragma=foreign_keys(1)",
		DBLogLevel:     "silent",
		DBMaxOpenConns: 1,
		AdminEmail:     "owner@voyra.test",
		AdminPassword:  "pw",
	}
	db, err := ConnectDatabase(cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	var n int64
	if err := db.Table("users").Where("email = ?", "owner@voyra.test").Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected seeded admin, got %d", n)
	}
	// Seeding twice keeps a single row.
	if err := EnsureAdminUser(db, "OWNER@voyra.test", "other", ""); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	db.Table("users").Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 user after reseed, got %d", n)
	}
}

func TestEnsureJWTSecret(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr error
		keep    bool
	}{
		{name: "explicit secret kept", cfg: Config{GinMode: "release", JWTSecret: "s3cret"}, keep: true},
		{name: "release without secret", cfg: Config{GinMode: "release"}, wantErr: ErrMissingJWTSecret},
		{name: "release with blank secret", cfg: Config{GinMode: "release", JWTSecret: "  "}, wantErr: ErrMissingJWTSecret},
		{name: "debug without secret", cfg: Config{GinMode: "debug"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.EnsureJWTSecret()
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				return
			}
			if tc.keep && cfg.JWTSecret != tc.cfg.JWTSecret {
				t.Fatalf("secret replaced: %q", cfg.JWTSecret)
			}
			if !tc.keep && len(cfg.JWTSecret) != 64 {
				t.Fatalf("expected a generated 32-byte hex key, got %q", cfg.JWTSecret)
			}
		})
	}
}

func TestGeneratedJWTSecretsDiffer(t *testing.T) {
	a, b := Config{}, Config{}
	if err := a.EnsureJWTSecret(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if err := b.EnsureJWTSecret(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if a.JWTSecret == b.JWTSecret {
		t.Fatalf("two processes must not share a generated key")
	}
}

func TestDefaultsCarryNoJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("GIN_MODE", "release")
	cfg := FromEnv()
	if cfg.JWTSecret != "" {
		t.Fatalf("no built-in secret may be used, got %q", cfg.JWTSecret)
	}
	if !cfg.Release() {
		t.Fatalf("GIN_MODE=release not picked up")
	}
	if err := cfg.EnsureJWTSecret(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("err = %v", err)
	}
}
