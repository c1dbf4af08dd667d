package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nfrund/unisocial/internal/apiclient"
	"github.com/nfrund/unisocial/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*apiclient.Client, *apiclient.Counter) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	counter := &apiclient.Counter{}
	return apiclient.New(srv.URL+"/api", apiclient.WithIndicator(counter)), counter
}

func TestDo_SetsHeadersAndReleasesIndicator(t *testing.T) {
	var seen []bool
	counter := &apiclient.Counter{OnChange: func(active bool) { seen = append(seen, active) }}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "/api/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"OK"}`))
	}))
	defer srv.Close()

	client := apiclient.New(srv.URL+"/api/", apiclient.WithIndicator(counter))
	ok, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, counter.Active())
	assert.Equal(t, []bool{true, false}, seen)
}

func TestDo_ErrorTaxonomy(t *testing.T) {
	t.Run("non-2xx surfaces server message", func(t *testing.T) {
		client, counter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Credenciales inválidas"}`))
		})
		err := client.Get(context.Background(), "/usuarios", nil)

		var httpErr *apiclient.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
		assert.Equal(t, "Credenciales inválidas", err.Error())
		assert.False(t, counter.Active())
	})

	t.Run("non-2xx without body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		err := client.Get(context.Background(), "/usuarios", nil)
		assert.EqualError(t, err, "HTTP error! status: 502")
	})

	t.Run("malformed body", func(t *testing.T) {
		client, counter := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>oops</html>`))
		})
		err := client.Get(context.Background(), "/usuarios", nil)
		assert.ErrorIs(t, err, apiclient.ErrMalformedResponse)
		assert.False(t, counter.Active())
	})

	t.Run("null body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		})
		_, err := client.ListUsers(context.Background())
		assert.ErrorIs(t, err, apiclient.ErrEmptyResponse)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		counter := &apiclient.Counter{}
		client := apiclient.New(srv.URL, apiclient.WithIndicator(counter))

		err := client.Get(context.Background(), "/health", nil)
		assert.ErrorIs(t, err, apiclient.ErrTransport)
		assert.False(t, counter.Active())
	})

	t.Run("success false envelope", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"El email ya está registrado"}`))
		})
		_, err := client.Register(context.Background(), domain.Registration{})

		var serverErr *apiclient.ServerError
		require.True(t, errors.As(err, &serverErr))
		assert.Equal(t, "El email ya está registrado", err.Error())
	})
}

func TestLogin(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/usuarios/login", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var got map[string]string
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "ana@ucc.edu.co", got["email"])
		assert.Equal(t, "secreto", got["contraseña"])

		_, _ = w.Write([]byte(`{"success":true,"usuario":{"_id":"u1","nombre":"Ana","intereses":["social"]}}`))
	})

	user, err := client.Login(context.Background(), domain.Credentials{Email: "ana@ucc.edu.co", Password: "secreto"})
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, []string{"social"}, user.Interests)
}

func TestLogin_MissingUserIsInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	_, err := client.Login(context.Background(), domain.Credentials{})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestListPosts_Personalized(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/publicaciones", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("personalizadas"))
		assert.Equal(t, "u1", r.URL.Query().Get("current_user_id"))
		_, _ = w.Write([]byte(`{"success":true,"publicaciones":[{"_id":"p1","contenido":"hola","likes":2}]}`))
	})

	posts, err := client.ListPosts(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].Likes)
}

func TestToggleLike_ResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want domain.LikeState
	}{
		{"data object", `{"success":true,"data":{"likes":4,"usuario_dio_like":true}}`, domain.LikeState{PostID: "p1", Likes: 4, Liked: true}},
		{"top-level fields", `{"success":true,"likes":0,"usuario_dio_like":false}`, domain.LikeState{PostID: "p1", Likes: 0, Liked: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/publicaciones/p1/like", r.URL.Path)
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "u9", body["user_id"])
				_, _ = w.Write([]byte(tt.body))
			})

			state, err := client.ToggleLike(context.Background(), "p1", "u9")
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestGetProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/usuarios/u1/perfil", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true,"perfil":{"usuario":{"_id":"u1","nombre":"Ana"},"estadisticas":{"total_publicaciones":0,"total_likes_recibidos":0,"categoria_favorita":"general","categorias_uso":{}},"publicaciones_recientes":[]}}`))
	})

	profile, err := client.GetProfile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.User.Name)
	assert.Empty(t, profile.RecentPosts)
}

func TestCreatePost_OmitsBlankTitle(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasTitle := body["titulo"]
		assert.False(t, hasTitle)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"publicacion_id":"p7"}`))
	})

	id, err := client.CreatePost(context.Background(), domain.NewPost{AuthorID: "u1", Content: "hola", Category: "general"})
	require.NoError(t, err)
	assert.Equal(t, "p7", id)
}

func TestCounterNesting(t *testing.T) {
	c := &apiclient.Counter{}
	c.Show()
	c.Show()
	c.Hide()
	assert.True(t, c.Active())
	c.Hide()
	assert.False(t, c.Active())
	c.Hide()
	assert.False(t, c.Active())
}
