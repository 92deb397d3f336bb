// The gallery proxy fronts the gallery UI. It forwards /api requests to the
// catalog backend, with the prefix removed, and /sanweifile requests to the
// 3D asset file server. Any other path is served from an optional static
// directory holding the built UI.
package main

import (
	"flag"
	"log"
	"net/http"
	"net/url"
	"os"

	"github.com/gazebo-web/gz-go/v7"
	"github.com/gazebo-web/model-gallery/proxy"
	"github.com/gorilla/mux"
	"github.com/urfave/negroni"
)

const (
	apiPrefix          = "/api"
	defaultListen      = ":5173"
	defaultBackend     = "http://127.0.0.1:9090"
	defaultFilesTarget = "http://" + proxy.FileServerIP + ":9001"
)

// envOr returns the value of the environment variable name, or def.
func envOr(name, def string) string {
	if v, err := gz.ReadEnvVar(name); err == nil {
		return v
	}
	return def
}

func main() {
	listen := flag.String("listen", envOr("GALLERY_PROXY_LISTEN", defaultListen), "address to listen on")
	backend := flag.String("backend", envOr("GALLERY_PROXY_BACKEND", defaultBackend), "catalog backend URL")
	files := flag.String("files", envOr("GALLERY_FILE_SERVER_URL", defaultFilesTarget), "asset file server URL")
	static := flag.String("static", envOr("GALLERY_PROXY_STATIC_DIR", ""), "directory with the built UI")
	flag.Parse()

	logger := gz.NewLogger("gallery-proxy", gz.ReadStdLogEnvVar(), gz.VerbosityInfo)

	backendURL, err := proxy.ParseTarget(*backend)
	if err != nil {
		log.Fatalln(err)
	}
	filesURL, err := proxy.ParseTarget(*files)
	if err != nil {
		log.Fatalln(err)
	}

	handler := newHandler(backendURL, filesURL, *static, logger)
	logger.Info("Proxying", apiPrefix, "to", backendURL.String(), "and", proxy.FilePrefix, "to", filesURL.String())
	logger.Info("Listening on", *listen)
	if err := http.ListenAndServe(*listen, handler); err != nil {
		logger.Critical(err)
		os.Exit(1)
	}
}

// newHandler builds the proxy routes. static may be empty.
func newHandler(backend, files *url.URL, static string, logger gz.Logger) http.Handler {
	r := mux.NewRouter()
	r.PathPrefix(apiPrefix + "/").Handler(proxy.NewPrefixProxy(backend, apiPrefix))
	r.PathPrefix(proxy.FilePrefix + "/").Handler(proxy.NewFileProxy(files))
	if static != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(static)))
	}

	n := negroni.New()
	n.Use(negroni.NewRecovery())
	n.UseFunc(func(w http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
		logger.Debug(req.Method, req.URL.Path)
		next(w, req)
	})
	n.UseHandler(r)
	return n
}
