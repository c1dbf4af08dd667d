package apiclient

import (
	"context"
	"net/url"

	"github.com/nfrund/unisocial/internal/domain"
)

// API paths, relative to the base URL.
const (
	PathLogin  = "/usuarios/login"
	PathUsers  = "/usuarios"
	PathPosts  = "/publicaciones"
	PathHealth = "/health"
)

// ProfilePath is the profile aggregate path for a user.
func ProfilePath(userID string) string {
	return PathUsers + "/" + url.PathEscape(userID) + "/perfil"
}

// LikePath is the like-toggle path for a post.
func LikePath(postID string) string {
	return PathPosts + "/" + url.PathEscape(postID) + "/like"
}

// PostsPath returns the collection path, personalized for userID when set.
func PostsPath(personalizedFor string) string {
	if personalizedFor == "" {
		return PathPosts
	}
	q := url.Values{}
	q.Set("personalizadas", "true")
	q.Set("current_user_id", personalizedFor)
	return PathPosts + "?" + q.Encode()
}

// Health probes the API. It reports true only for {"status":"OK"}.
func (c *Client) Health(ctx context.Context) (bool, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.Get(ctx, PathHealth, &resp); err != nil {
		return false, err
	}
	return resp.Status == "OK", nil
}

// LoginResponse is the body of a login call.
type LoginResponse struct {
	Envelope
	User *domain.User `json:"usuario"`
}

// Login authenticates and returns the user record.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	var resp LoginResponse
	if err := c.Post(ctx, PathLogin, creds, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	if !resp.OK() || resp.User == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return resp.User, nil
}

// RegisterResponse is the body of a registration call.
type RegisterResponse struct {
	Envelope
	UserID string `json:"user_id"`
}

// Register creates an account and returns the new user's id.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (string, error) {
	var resp RegisterResponse
	if err := c.Post(ctx, PathUsers, reg, &resp); err != nil {
		return "", err
	}
	if err := resp.Validate(); err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", &ServerError{Message: orDefault(resp.Error, "Error al crear la cuenta")}
	}
	return resp.UserID, nil
}

// ListUsers returns every registered user.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var resp struct {
		Envelope
		Users []domain.User `json:"usuarios"`
	}
	if err := c.Get(ctx, PathUsers, &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// GetProfile returns the profile aggregate of a user.
func (c *Client) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var resp struct {
		Envelope
		Profile *domain.Profile `json:"perfil"`
	}
	if err := c.Get(ctx, ProfilePath(userID), &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	if !resp.OK() || resp.Profile == nil {
		return nil, &ServerError{Message: "No se pudo cargar el perfil"}
	}
	return resp.Profile, nil
}

// ListPosts returns the post collection, personalized for the given user id
// when it is not empty.
func (c *Client) ListPosts(ctx context.Context, personalizedFor string) ([]domain.Post, error) {
	var resp struct {
		Envelope
		Posts []domain.Post `json:"publicaciones"`
	}
	if err := c.Get(ctx, PostsPath(personalizedFor), &resp); err != nil {
		return nil, err
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return resp.Posts, nil
}

// CreatePost publishes a post and returns its id.
func (c *Client) CreatePost(ctx context.Context, post domain.NewPost) (string, error) {
	var resp struct {
		Envelope
		PostID string `json:"publicacion_id"`
	}
	if err := c.Post(ctx, PathPosts, post, &resp); err != nil {
		return "", err
	}
	if err := resp.Validate(); err != nil {
		return "", err
	}
	if !resp.OK() {
		return "", &ServerError{Message: orDefault(resp.Error, "Error al crear la publicación")}
	}
	return resp.PostID, nil
}

// ToggleLike flips the acting user's like on a post and returns the server's
// resulting state.
func (c *Client) ToggleLike(ctx context.Context, postID, userID string) (domain.LikeState, error) {
	var resp struct {
		Envelope
		Data  *domain.LikeState `json:"data"`
		Likes *int              `json:"likes"`
		Liked *bool             `json:"usuario_dio_like"`
	}
	body := map[string]string{"user_id": userID}
	if err := c.Post(ctx, LikePath(postID), body, &resp); err != nil {
		return domain.LikeState{}, err
	}
	if err := resp.Validate(); err != nil {
		return domain.LikeState{}, err
	}
	if !resp.OK() {
		return domain.LikeState{}, &ServerError{Message: "Error al procesar like"}
	}

	state := domain.LikeState{PostID: postID}
	switch {
	case resp.Data != nil:
		state.Likes = resp.Data.Likes
		state.Liked = resp.Data.Liked
	default:
		if resp.Likes != nil {
			state.Likes = *resp.Likes
		}
		if resp.Liked != nil {
			state.Liked = *resp.Liked
		}
	}
	return state, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
