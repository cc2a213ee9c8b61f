// Package docs registers the OpenAPI document with swag so echo-swagger can
// serve it under /swagger.
package docs

import (
	"sync"

	"shipment/internal/generated/servers"

	"github.com/swaggo/swag"
)

type document struct {
	once sync.Once
	json string
}

// ReadDoc renders the embedded OpenAPI document as JSON.
func (d *document) ReadDoc() string {
	d.once.Do(func() {
		spec, err := servers.GetSwagger()
		if err != nil {
			return
		}
		raw, err := spec.MarshalJSON()
		if err != nil {
			return
		}
		d.json = string(raw)
	})
	return d.json
}

func init() {
	swag.Register(swag.Name, &document{})
}
