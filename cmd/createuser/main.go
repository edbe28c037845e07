// createuser crea un usuario directamente en la base de datos (bootstrap del primer
// admin, cuando todavía no existe nadie con manage_users para usar la API).
//
// Uso: go run ./cmd/createuser -username admin -password <pass> -role admin
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

func main() {
	username := flag.String("username", "", "nombre de usuario (requerido)")
	password := flag.String("password", "", "contraseña en texto plano (requerido)")
	roleStr := flag.String("role", "admin", "rol: admin, editor o viewer")
	flag.Parse()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "se requieren -username y -password")
		flag.Usage()
		os.Exit(2)
	}
	role, ok := entity.ParseRole(*roleStr)
	if !ok {
		fmt.Fprintf(os.Stderr, "rol inválido: %q (admin|editor|viewer)\n", *roleStr)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashear password: %v\n", err)
		os.Exit(1)
	}

	repo := postgres.NewUserRepository(pool)
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     *username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := repo.Create(user); err != nil {
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuario %q creado con rol %s (id %s)\n", user.Username, user.Role, user.ID)
}
