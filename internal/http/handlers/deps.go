package handlers

import (
	"github.com/jmoiron/sqlx"

	"mercadito/internal/auth"
	"mercadito/internal/repos"
	"mercadito/internal/services"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	DocsHandler    *DocsHandler
}

func NewDeps(db *sqlx.DB, tokens *auth.Tokens) *Deps {
	userRepo := repos.NewUserRepo(db)
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)

	authSvc := services.NewAuthService(userRepo, tokens)
	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		DocsHandler:    &DocsHandler{},
	}
}
