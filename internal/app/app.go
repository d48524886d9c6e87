package app

import (
	"html/template"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	"github.com/sameerdev7/sneakhub/internal/adapters/genai"
	"github.com/sameerdev7/sneakhub/internal/adapters/httpserver"
	"github.com/sameerdev7/sneakhub/internal/adapters/repo/postgres"
	"github.com/sameerdev7/sneakhub/internal/adapters/scraper"
	"github.com/sameerdev7/sneakhub/internal/domain"
	"github.com/sameerdev7/sneakhub/internal/money"
	"github.com/sameerdev7/sneakhub/internal/usecase"
	"github.com/sameerdev7/sneakhub/internal/views"
)

type App struct {
	DB          *gorm.DB
	Tmpl        *template.Template
	ProductUC   *usecase.ProductUC
	OrderUC     *usecase.OrderUC
	PricingUC   *usecase.PricingUC
	Customers   domain.CustomerRepo
	Images      *scraper.ImageScraper
	OAuthConfig *oauth2.Config
}

// NewApp wires repos, usecases and templates. A nil db leaves every repo
// nil: reads degrade to empty results and writes surface
// domain.ErrStoreNotConnected, so the shop still serves pages without a
// configured store.
func NewApp(db *gorm.DB) (*App, error) {
	app := &App{DB: db}

	if db != nil {
		app.Customers = postgres.NewCustomerRepo(db)
		app.ProductUC = &usecase.ProductUC{Products: postgres.NewProductRepo(db)}
		app.OrderUC = &usecase.OrderUC{Orders: postgres.NewOrderRepo(db)}
	} else {
		app.ProductUC = &usecase.ProductUC{}
		app.OrderUC = &usecase.OrderUC{}
	}
	app.OrderUC.WhatsAppPhone = os.Getenv("WHATSAPP_PHONE")

	app.PricingUC = &usecase.PricingUC{AI: genai.New(os.Getenv("OPENAI_API_KEY"))}
	app.Images = scraper.NewImageScraper()

	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if googleID != "" && googleSecret != "" {
		app.OAuthConfig = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			RedirectURL:  baseURL + "/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"price": func(v float64, currency string) string {
			return money.Format(v, currency)
		},
	}

	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	var tmpl *template.Template
	var err error
	if isDev {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseGlob("internal/views/*.html")
		if err != nil {
			return nil, err
		}
		_, err = tmpl.ParseGlob("internal/views/admin/*.html")
		if err != nil {
			return nil, err
		}
	} else {
		tmpl, err = template.New("layout").Funcs(funcMap).ParseFS(views.FS, "*.html", "admin/*.html")
		if err != nil {
			return nil, err
		}
	}
	app.Tmpl = tmpl

	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.ProductUC, a.OrderUC, a.PricingUC, a.Customers, a.Images, a.OAuthConfig)
}
