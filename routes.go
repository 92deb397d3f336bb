package main

import (
	"net/http"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/proxy"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/urfave/negroni"
)

// Route is a definition of a route
type Route struct {
	// Name of the route
	Name string
	// Description of the route
	Description string
	// URI pattern
	URI string
	// Methods supported by this route
	Methods Methods
}

// Routes is an array of Route
type Routes []Route

// Method associates an HTTP method (GET, POST, ...) with a handler.
type Method struct {
	// GET, POST, PUT, DELETE
	Type string
	// Description of the method
	Description string
	// Handler serving the method, built with EnvelopeResult, DemoResult or
	// NoResult.
	Handler http.Handler
}

// Methods is a slice of Method
type Methods []Method

// ///////////////////////////////////////////////
// / Declare the routes. See also newRouter.
var routes = Routes{

	/////////////
	// Listing //
	/////////////

	Route{
		"SearchList",
		"Paged catalog listing",
		"/search/list",
		Methods{
			// swagger:route GET /search/list models searchList
			//
			// Get a page of models.
			//
			// Query parameters: 'pageNum' (from 1, default 1), 'pageSize'
			// (1 to 100, default 10), and the optional 'category' (a category
			// code) and 'keyword'. Errors are reported in the envelope code.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     200: listingEnvelope
			Method{
				"GET",
				"Get a page of models",
				EnvelopeResult(SearchList),
			},
		},
	},

	////////////
	// Models //
	////////////

	Route{
		"Models",
		"Information about all models",
		"/api/models",
		Methods{
			// swagger:route GET /api/models models listModels
			//
			// Get list of models.
			//
			// Models are returned paginated, with pages of 10 models by default.
			// The 'category' query parameter filters on the robot type.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     200: demoList
			Method{
				"GET",
				"Get all models",
				DemoResult(ModelList),
			},
		},
	},

	Route{
		"ModelSearch",
		"Keyword search of models",
		"/api/models/search",
		Methods{
			// swagger:route GET /api/models/search models searchModels
			//
			// Search models.
			//
			// The 'keyword' query parameter is matched against the name, type
			// and description of the models, ignoring case.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     200: demoList
			Method{
				"GET",
				"Search models",
				DemoResult(ModelSearch),
			},
		},
	},

	Route{
		"Model",
		"Information about a single model",
		"/api/models/{id:[0-9]+}",
		Methods{
			// swagger:route GET /api/models/{id} models singleModel
			//
			// Get a single model.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     default: demoError
			//     200: demoModel
			Method{
				"GET",
				"Get a model",
				DemoResult(ModelGet),
			},
		},
	},

	Route{
		"ModelImage",
		"Cover image of a model",
		"/api/models/{id:[0-9]+}/image",
		Methods{
			// swagger:route GET /api/models/{id}/image models modelImage
			//
			// Get the cover image of a model.
			//
			// Redirects to a placeholder image when the model has no cover.
			//
			//   Produces:
			//   - image/jpeg
			//
			//   Responses:
			//     default: demoError
			Method{
				"GET",
				"Get the cover image of a model",
				NoResult(ModelImage),
			},
		},
	},

	Route{
		"ModelThumbnail",
		"Thumbnail of the cover image of a model",
		"/api/models/{id:[0-9]+}/thumbnail",
		Methods{
			// swagger:route GET /api/models/{id}/thumbnail models modelThumbnail
			//
			// Get the cover thumbnail of a model.
			//
			//   Produces:
			//   - image/jpeg
			//
			//   Responses:
			//     default: demoError
			Method{
				"GET",
				"Get the cover thumbnail of a model",
				NoResult(ModelThumbnail),
			},
		},
	},

	Route{
		"ModelLikes",
		"Likes of a model",
		"/api/models/{id:[0-9]+}/likes",
		Methods{
			// swagger:route POST /api/models/{id}/likes models likeModel
			//
			// Like or unlike a model.
			//
			// The body is {"liked": true} to like the model and
			// {"liked": false} to remove the like.
			//
			//   Consumes:
			//   - application/json
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     default: demoError
			//     200: demoModel
			Method{
				"POST",
				"Like or unlike a model",
				DemoResult(ModelLike),
			},
		},
	},

	////////////////
	// Categories //
	////////////////

	Route{
		"Categories",
		"List of categories",
		"/categories",
		Methods{
			// swagger:route GET /categories categories listCategories
			//
			// Get the list of categories with their model counts.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     200: categoryList
			Method{
				"GET",
				"Get the categories",
				DemoResult(CategoryList),
			},
		},
	},

	Route{
		"Category",
		"A single category",
		"/categories/{slug}",
		Methods{
			// swagger:route GET /categories/{slug} categories singleCategory
			//
			// Get a category by its slug.
			//
			//   Produces:
			//   - application/json
			//
			//   Responses:
			//     default: demoError
			//     200: category
			Method{
				"GET",
				"Get a category",
				DemoResult(CategoryGet),
			},
		},
	},
}

// newRouter builds the gallery HTTP handler. When fileServer is set the
// file server is proxied at proxy.FilePrefix.
func newRouter(logger gz.Logger, verbosity int, fileServer string) http.Handler {
	r := mux.NewRouter()
	for _, route := range routes {
		for _, m := range route.Methods {
			r.Methods(m.Type).Path(route.URI).Name(route.Name).Handler(m.Handler)
		}
	}

	if fileServer != "" {
		target, err := proxy.ParseTarget(fileServer)
		if err != nil {
			logger.Error("Invalid GALLERY_FILE_SERVER_URL. File proxy disabled.", err)
		} else {
			r.PathPrefix(proxy.FilePrefix + "/").Handler(proxy.NewFileProxy(target))
		}
	}

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	if verbosity >= gz.VerbosityInfo {
		n.Use(negroni.NewLogger())
	}
	n.Use(corsHeaders())
	n.Use(requestLogger(logger))
	n.UseHandler(r)
	return n
}

// corsHeaders allows the gallery UI to call the API from any origin.
// Preflight requests are answered by the handler itself.
func corsHeaders() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
	})
}

// requestLogger puts logger in the context of each request.
func requestLogger(logger gz.Logger) negroni.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		next(w, r.WithContext(gz.NewContextWithLogger(r.Context(), logger)))
	}
}
