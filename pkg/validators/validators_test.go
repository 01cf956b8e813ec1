package validators

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Style      string `json:"style" binding:"required,video_style"`
	Duration   int    `json:"duration" binding:"required,video_duration"`
	Type       string `form:"type" binding:"upload_type"`
	Variations *int   `json:"variations" binding:"omitempty,min=1,max=8"`
}

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterOn(v))

	return v
}

func intPtr(i int) *int { return &i }

func TestCustomTags(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name string
		in   body
		ok   bool
	}{
		{"valid", body{Style: "digital art", Duration: 10, Type: "reference"}, true},
		{"valid variations", body{Style: "anime", Duration: 3, Type: "image2video", Variations: intPtr(8)}, true},
		{"bad style", body{Style: "noir", Duration: 5, Type: "reference"}, false},
		{"bad duration", body{Style: "anime", Duration: 7, Type: "reference"}, false},
		{"bad type", body{Style: "anime", Duration: 5, Type: "video"}, false},
		{"zero variations", body{Style: "anime", Duration: 5, Type: "reference", Variations: intPtr(0)}, false},
		{"too many variations", body{Style: "anime", Duration: 5, Type: "reference", Variations: intPtr(9)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	v := newValidator(t)

	err := v.Struct(body{Style: "noir", Duration: 7, Type: "reference", Variations: intPtr(20)})
	require.Error(t, err)

	msg := Message(err)
	assert.Contains(t, msg, `style must be one of "realistic"`)
	assert.Contains(t, msg, "duration must be one of 3, 5, 10, 20")
	assert.Contains(t, msg, "variations must be at most 8")

	err = v.Struct(body{Duration: 5, Type: "reference"})
	assert.Equal(t, "style is required", Message(err))

	var b body
	err = json.Unmarshal([]byte(`{"duration":"five"}`), &b)
	assert.Equal(t, "duration must be of type int", Message(err))

	assert.Equal(t, "Malformed or invalid JSON request body", Message(io.EOF))
	assert.Equal(t, "Malformed or invalid JSON request body", Message(json.Unmarshal([]byte(`{`), &b)))
}
