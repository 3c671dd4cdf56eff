package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	defaultUserAgent = "Toolbelt/1.0 (Autonomous; +https://github.com/toolbelt/toolbelt)"

	maxErrorBodyBytes = 512
)

// toolBase carries the fields and accessors every adapter shares. Adapters
// embed it and implement Parameters and Execute themselves.
type toolBase struct {
	name          string
	description   string
	configuration map[string]string
	logger        *zap.Logger
}

func (t *toolBase) Name() string {
	return t.name
}

func (t *toolBase) Description() string {
	return t.description
}

func (t *toolBase) Configuration() map[string]string {
	return t.configuration
}

func (t *toolBase) UpdateConfiguration(config map[string]string) {
	t.configuration = config
}

func (t *toolBase) FullDescription() string {
	var b strings.Builder

	b.WriteString(t.Description())
	b.WriteString("\n\n")

	b.WriteString("Configuration for this tool:\n")
	b.WriteString("| Key           | Value         |\n")
	b.WriteString("|---------------|---------------|\n")

	for key, value := range t.configuration {
		b.WriteString(fmt.Sprintf("| %-13s | %-13s |\n", key, value))
	}

	return b.String()
}

func httpClientOrDefault(client interfaces.HTTPClient) interfaces.HTTPClient {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// clamp pins n to [lo, hi]. Re-clamping a clamped value is a no-op.
func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// validateArguments enforces the declarative Parameter constraints against
// the raw JSON arguments before an operation runs. A violation comes back as
// an InvalidInputError so it lands in the envelope as kind invalid_input.
func validateArguments(params []entities.Parameter, arguments string) error {
	raw := map[string]any{}
	if strings.TrimSpace(arguments) != "" {
		if err := json.Unmarshal([]byte(arguments), &raw); err != nil {
			return errors.InvalidInputErrorf("arguments must be a JSON object: %v", err)
		}
	}

	for _, p := range params {
		value, present := raw[p.Name]
		if !present || value == nil {
			if p.Required {
				return errors.InvalidInputErrorf("missing required argument %q", p.Name)
			}
			continue
		}

		switch p.Type {
		case "string":
			s, ok := value.(string)
			if !ok {
				return errors.InvalidInputErrorf("argument %q must be a string", p.Name)
			}
			if p.Required && s == "" {
				return errors.InvalidInputErrorf("missing required argument %q", p.Name)
			}
			if p.MaxLength > 0 && len(s) > p.MaxLength {
				return errors.InvalidInputErrorf("argument %q exceeds maximum length of %d", p.Name, p.MaxLength)
			}
			if len(p.Enum) > 0 && s != "" {
				found := false
				for _, e := range p.Enum {
					if s == e {
						found = true
						break
					}
				}
				if !found {
					return errors.InvalidInputErrorf("argument %q must be one of %v", p.Name, p.Enum)
				}
			}
		case "integer", "number":
			n, ok := value.(float64)
			if !ok {
				return errors.InvalidInputErrorf("argument %q must be a number", p.Name)
			}
			if p.Minimum != nil && n < *p.Minimum {
				return errors.InvalidInputErrorf("argument %q must be >= %v", p.Name, *p.Minimum)
			}
			if p.Maximum != nil && n > *p.Maximum {
				return errors.InvalidInputErrorf("argument %q must be <= %v", p.Name, *p.Maximum)
			}
		}
	}

	return nil
}

// unmarshalArgs parses the model-supplied arguments into the operation's
// typed view. Empty input means "no arguments".
func unmarshalArgs(arguments string, v any) error {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	if err := json.Unmarshal([]byte(arguments), v); err != nil {
		return errors.InvalidInputErrorf("failed to parse arguments: %v", err)
	}
	return nil
}

// doRequest is the one place an adapter touches the network. It maps every
// failure to the envelope taxonomy: client errors to transport, status >= 400
// to upstream. The body is fully read so the connection can be reused.
func doRequest(client interfaces.HTTPClient, req *http.Request, logger *zap.Logger) ([]byte, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.TransportErrorf("request to %s failed: %v", req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.TransportErrorf("failed to read response from %s: %v", req.URL.Host, err)
	}

	logger.Debug("response received",
		zap.String("host", req.URL.Host),
		zap.Int("status", resp.StatusCode),
		zap.String("size", humanize.Bytes(uint64(len(body)))))

	if resp.StatusCode >= 400 {
		return nil, errors.UpstreamStatusErrorf(resp.StatusCode, "%s returned status %d: %s",
			req.URL.Host, resp.StatusCode, errorBodySnippet(body))
	}

	return body, nil
}

func decodeJSON(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return errors.DecodeErrorf("failed to decode response: %v", err)
	}
	return nil
}

func errorBodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBodyBytes {
		s = s[:maxErrorBodyBytes]
	}
	if s == "" {
		s = "(empty body)"
	}
	return s
}

// setBearer adds the Authorization header only when the token is non-empty,
// so unauthenticated calls carry no header at all.
func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
