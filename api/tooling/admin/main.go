package main

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/veltrip/platform/business/domain/companybus"
	"github.com/veltrip/platform/business/domain/companybus/stores/companydb"
	"github.com/veltrip/platform/business/domain/userbus"
	"github.com/veltrip/platform/business/domain/userbus/stores/usercache"
	"github.com/veltrip/platform/business/domain/userbus/stores/userdb"
	"github.com/veltrip/platform/business/sdk/sqldb"
	"github.com/veltrip/platform/business/types/name"
	"github.com/veltrip/platform/business/types/password"
	"github.com/veltrip/platform/business/types/phone"
	"github.com/veltrip/platform/business/types/role"
	"github.com/veltrip/platform/foundation/logger"
)

// Config replicates necessary DB config structure
type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"veltrip"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-admin, create-company, genkey")
		return nil
	}

	// genkey does not touch the database.
	if os.Args[1] == "genkey" {
		return runGenKey(os.Args[2:])
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
	companyBus := companybus.NewCore(companydb.NewStore(log, db))

	switch os.Args[1] {
	case "create-admin":
		return runCreateAdmin(ctx, userBus, os.Args[2:])
	case "create-company":
		return runCreateCompany(ctx, companyBus, userBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runCreateAdmin provisions a platform operator. Platform admins belong to no
// company so the company id is left as the zero uuid.
func runCreateAdmin(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-admin", flag.ExitOnError)
	emailStr := cmd.String("email", "", "Admin email (Required)")
	passStr := cmd.String("password", "", "Admin password (Required)")
	nameStr := cmd.String("name", "", "Admin full name (Required)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	newUser := userbus.NewUser{
		CompanyID: uuid.Nil,
		Name:      n,
		Email:     mail.Address{Address: *emailStr},
		Phone:     phone.Null{},
		Role:      role.Admin,
		Password:  p,
	}

	usr, err := ub.Create(ctx, newUser)
	if err != nil {
		return fmt.Errorf("create admin failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Admin created!\nID: %s\nEmail: %s\n", usr.ID, usr.Email.Address)
	return nil
}

// runCreateCompany provisions a company and its first COMPANY user in one go.
func runCreateCompany(ctx context.Context, cb *companybus.Core, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-company", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Company name (Required)")
	domainStr := cmd.String("domain", "", "Company domain, e.g. acme.com (Required)")
	subStr := cmd.String("subdomain", "", "Company subdomain, e.g. acme (Required)")
	emailStr := cmd.String("admin-email", "", "Company admin email (Required)")
	passStr := cmd.String("admin-password", "", "Company admin password (Required)")
	cmd.Parse(args)

	if *nameStr == "" || *domainStr == "" || *subStr == "" || *emailStr == "" || *passStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	cmp, err := cb.Create(ctx, companybus.NewCompany{
		Name:      n,
		Domain:    *domainStr,
		Subdomain: *subStr,
		Phone:     phone.Null{},
	})
	if err != nil {
		return fmt.Errorf("create company failed: %w", err)
	}

	usr, err := ub.Create(ctx, userbus.NewUser{
		CompanyID: cmp.ID,
		Name:      n,
		Email:     mail.Address{Address: *emailStr},
		Phone:     phone.Null{},
		Role:      role.Company,
		Password:  p,
	})
	if err != nil {
		return fmt.Errorf("create company admin failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Company created!\nCompany ID: %s\nAdmin ID: %s\nAdmin Email: %s\n", cmp.ID, usr.ID, usr.Email.Address)
	return nil
}

// runGenKey creates an RSA private key PEM in the keys folder. The file name
// is the kid the keystore will serve it under.
func runGenKey(args []string) error {
	cmd := flag.NewFlagSet("genkey", flag.ExitOnError)
	folder := cmd.String("folder", "zarf/keys", "Folder to write the PEM into")
	cmd.Parse(args)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return fmt.Errorf("generating key: %w", err)
	}

	kid := uuid.NewString()

	if err := os.MkdirAll(*folder, 0o755); err != nil {
		return fmt.Errorf("creating keys folder: %w", err)
	}

	file, err := os.Create(filepath.Join(*folder, kid+".pem"))
	if err != nil {
		return fmt.Errorf("creating key file: %w", err)
	}
	defer file.Close()

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(privateKey),
	}

	if err := pem.Encode(file, &block); err != nil {
		return fmt.Errorf("encoding key: %w", err)
	}

	fmt.Printf("\nSUCCESS: Key generated!\nKID: %s\nFile: %s\n", kid, file.Name())
	return nil
}

// go run api/tooling/admin/main.go genkey
// go run api/tooling/admin/main.go create-admin -email "ops@veltrip.com" -password "Admin123!" -name "Platform Admin"
// go run api/tooling/admin/main.go create-company -name "Acme Cabs" -domain "acmecabs.com" -subdomain "acme" -admin-email "admin@acmecabs.com" -admin-password "Acme123!"
