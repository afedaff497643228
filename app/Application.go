package app

import (
	"github.com/acikkaynak/reliefhub-go/cache"
	"github.com/acikkaynak/reliefhub-go/geocode"
	"github.com/acikkaynak/reliefhub-go/handler"
	"github.com/acikkaynak/reliefhub-go/middleware/auth"
	mwcache "github.com/acikkaynak/reliefhub-go/middleware/cache"
	"github.com/acikkaynak/reliefhub-go/registry"
	_ "github.com/acikkaynak/reliefhub-go/swagger"
	swagger "github.com/arsmn/fiber-swagger/v2"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	missingPersonsPath = "/missing-persons"
	helpRequestsPath   = "/help-requests"
)

type Dependencies struct {
	Hubs           handler.HubStore
	MissingPersons handler.MissingPersonStore
	Publisher      handler.Publisher
	Cache          cache.Cache
	// Geocoder may be nil, in which case reports are stored without server-side lookup.
	Geocoder         geocode.Geocoder
	GeocodeMinLength int
	APIKey           string
}

type Application struct {
	app  *fiber.App
	deps Dependencies
}

func New(deps Dependencies) *Application {
	if deps.Cache == nil {
		deps.Cache = cache.NewMemory()
	}

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression,
	}))
	app.Use(cors.New())
	app.Use(recover.New())
	app.Use(auth.New(deps.APIKey))
	app.Use(pprof.New())
	app.Use(mwcache.New(mwcache.Config{
		Cache: deps.Cache,
		Skip:  []string{"/caches/prune"},
		Related: map[string][]string{
			registry.RegisterPath: {registry.ListPath},
		},
	}))

	a := &Application{app: app, deps: deps}
	a.Register()
	return a
}

func (a *Application) Register() {
	a.app.Get("/", handler.RedirectSwagger)
	a.app.Get("/healthcheck", handler.HealthCheck)
	a.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	a.app.Get("/monitor", monitor.New())
	a.app.Get("/caches/prune", handler.InvalidateCache(a.deps.Cache))

	a.app.Get(registry.ListPath, handler.GetReliefHubs(a.deps.Hubs))
	a.app.Post(registry.RegisterPath, handler.RegisterReliefHub(a.deps.Hubs, a.deps.Publisher))
	a.app.Get("/aid-types", handler.GetAidTypes)

	missingPersons := handler.NewMissingPersonsHandler(a.deps.MissingPersons, a.deps.Geocoder, a.deps.GeocodeMinLength)
	a.app.Get(missingPersonsPath, missingPersons.HandleList)
	a.app.Post(missingPersonsPath, missingPersons.HandleCreate)

	a.app.Get("/emergency-contacts", handler.GetEmergencyContacts)
	a.app.Post(helpRequestsPath, handler.CreateHelpRequest(a.deps.Publisher))

	route := a.app.Group("/swagger")
	route.Get("*", swagger.HandlerDefault)
}

func (a *Application) Fiber() *fiber.App {
	return a.app
}

func (a *Application) Listen(addr string) error {
	return a.app.Listen(addr)
}

func (a *Application) Shutdown() error {
	return a.app.Shutdown()
}
