package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

type fakeTokens struct {
	user     string
	vendor   string
	authType string
}

func (f *fakeTokens) UserToken() string   { return f.user }
func (f *fakeTokens) VendorToken() string { return f.vendor }
func (f *fakeTokens) AuthType() string    { return f.authType }

func TestAuthHeaderInjection(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{user: "u-tok", vendor: "v-tok", authType: "vendor"}
	client := New(srv.URL, srv.URL, 0, tokens, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, client.Get(ctx, "/x", AuthUser, nil))
	assert.Equal(t, "Bearer u-tok", gotAuth)

	require.NoError(t, client.Get(ctx, "/x", AuthVendor, nil))
	assert.Equal(t, "Bearer v-tok", gotAuth)

	require.NoError(t, client.Get(ctx, "/x", AuthAuto, nil))
	assert.Equal(t, "Bearer v-tok", gotAuth, "auto follows the persisted auth type")

	tokens.authType = "user"
	require.NoError(t, client.Get(ctx, "/x", AuthAuto, nil))
	assert.Equal(t, "Bearer u-tok", gotAuth)

	require.NoError(t, client.Get(ctx, "/x", AuthNone, nil))
	assert.Empty(t, gotAuth)
}

func TestErrorMessageExtraction(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", 400, `{"message":"Bad thing"}`, "Bad thing"},
		{"error field", 422, `{"error":"Also bad"}`, "Also bad"},
		{"non-JSON body", 500, `boom`, "Request failed with status 500"},
		{"empty body", 503, ``, "Request failed with status 503"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			client := New(srv.URL, srv.URL, 0, &fakeTokens{}, zap.NewNop())
			err := client.Get(context.Background(), "/x", AuthNone, nil)
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
			assert.True(t, IsStatus(err, tc.status))
			assert.False(t, IsStatus(err, 999))
		})
	}
}

func TestMultipartForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Palm Oil", r.FormValue("name"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		assert.Equal(t, "product.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, 0, &fakeTokens{}, zap.NewNop())
	err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/upload",
		Form: &MultipartForm{
			Fields: map[string]string{"name": "Palm Oil"},
			Files: []FilePart{
				{Field: "image", Filename: "product.jpg", Reader: strings.NewReader("jpegbytes")},
			},
		},
	}, nil)
	require.NoError(t, err)
}

func TestResponseDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value":42}`))
	}))
	defer srv.Close()

	client := New(srv.URL, srv.URL, 0, &fakeTokens{}, zap.NewNop())

	var out struct {
		Value int `json:"value"`
	}
	require.NoError(t, client.Get(context.Background(), "/x", AuthNone, &out))
	assert.Equal(t, 42, out.Value)

	// a nil out discards the body
	require.NoError(t, client.Get(context.Background(), "/x", AuthNone, nil))
}

func TestResolveImageURL(t *testing.T) {
	client := New("http://api.example/api", "http://api.example", 0, &fakeTokens{}, zap.NewNop())

	assert.Equal(t, "images/placeholder.jpg", client.ResolveImageURL(""))
	assert.Equal(t, "images/placeholder.jpg", client.ResolveImageURL("   "))
	assert.Equal(t, "https://cdn.example/x.jpg", client.ResolveImageURL("https://cdn.example/x.jpg"))
	assert.Equal(t, "http://api.example/uploads/x.jpg", client.ResolveImageURL("/uploads/x.jpg"))
	assert.Equal(t, "images/local.jpg", client.ResolveImageURL("images/local.jpg"))
}
