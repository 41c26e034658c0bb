package models

import "encoding/json"

// APICall is the normalized shape of one recorded HTTP call. Readers accept
// the compact capture form ({m,u,s,d,req,res}), the full form, and the legacy
// API/requests.json keys; writers emit the full form only.
type APICall struct {
	Method       string            `json:"method"`
	URL          string            `json:"url"`
	Status       int               `json:"status"`
	Duration     float64           `json:"duration,omitempty"`
	ReqHeaders   map[string]string `json:"reqHeaders,omitempty"`
	RequestBody  json.RawMessage   `json:"requestBody,omitempty"`
	ResHeaders   map[string]string `json:"resHeaders,omitempty"`
	ResponseBody json.RawMessage   `json:"responseBody,omitempty"`
}

// apiCallWire accepts every historical key set for one call record.
type apiCallWire struct {
	// Compact form
	M   string          `json:"m"`
	U   string          `json:"u"`
	S   *int            `json:"s"`
	D   *float64        `json:"d"`
	Req json.RawMessage `json:"req"`
	Res json.RawMessage `json:"res"`

	// Full form
	Method       string            `json:"method"`
	URL          string            `json:"url"`
	Status       *int              `json:"status"`
	Duration     *float64          `json:"duration"`
	ReqHeaders   map[string]string `json:"reqHeaders"`
	RequestBody  json.RawMessage   `json:"requestBody"`
	ResHeaders   map[string]string `json:"resHeaders"`
	ResponseBody json.RawMessage   `json:"responseBody"`

	// Legacy API/requests.json keys
	StatusCode *int            `json:"statusCode"`
	Request    json.RawMessage `json:"request"`
	Response   json.RawMessage `json:"response"`
}

// UnmarshalJSON normalizes any accepted wire form into the full shape.
func (c *APICall) UnmarshalJSON(data []byte) error {
	var w apiCallWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	c.Method = firstNonEmpty(w.Method, w.M)
	c.URL = firstNonEmpty(w.URL, w.U)

	switch {
	case w.Status != nil:
		c.Status = *w.Status
	case w.S != nil:
		c.Status = *w.S
	case w.StatusCode != nil:
		c.Status = *w.StatusCode
	}

	switch {
	case w.Duration != nil:
		c.Duration = *w.Duration
	case w.D != nil:
		c.Duration = *w.D
	}

	c.ReqHeaders = w.ReqHeaders
	c.ResHeaders = w.ResHeaders

	c.RequestBody = firstNonNil(w.RequestBody, w.Req, w.Request)
	c.ResponseBody = firstNonNil(w.ResponseBody, w.Res, w.Response)

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonNil(values ...json.RawMessage) json.RawMessage {
	for _, v := range values {
		if len(v) > 0 && string(v) != "null" {
			return v
		}
	}
	return nil
}
