package globals

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gazebo-web/model-gallery/bundles/assets"
	"github.com/go-playground/form"
	"github.com/jinzhu/gorm"
	"gopkg.in/go-playground/validator.v9"
)

// TODO: move the storage clients into the services that use them.

/////////////////////////////////////////////////
/// Define global variables here

// DB is the gallery database.
var DB *gorm.DB

// Validate references the global structs validator.
// See https://github.com/go-playground/validator.
// We use a single instance of validator, as it caches struct info
var Validate *validator.Validate

// FormDecoder holds a reference to the global Form Decoder.
// See https://github.com/go-playground/form.
// We use a single instance of Decoder, as it caches struct info
var FormDecoder *form.Decoder

// ElasticSearch is a pointer to the Elastic Search client. Nil when search
// falls back to SQL.
var ElasticSearch *elasticsearch.Client

// QueryCache is used to store/cache results for common queries. Nil when
// no memcache server is configured.
var QueryCache *memcache.Client

// Assets stores the model cover images. Nil means every cover is served as
// the placeholder.
var Assets assets.Store

// FileServerURL is the origin of the 3D asset file server. Cover and
// preview URLs are built on it.
var FileServerURL = "http://127.0.0.1:9001"

// PlaceholderURL is the format of the cover placeholder redirect. It gets
// the model ID.
var PlaceholderURL = "https://via.placeholder.com/300x200/FF6B35/FFFFFF?text=Model+%d"
