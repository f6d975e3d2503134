package models

import "encoding/json"

// Product is an opaque catalog entry. The console owns its shape; the server
// stores whatever it is sent.
type Product = json.RawMessage
