package server

import (
	"net/http"

	"socialnet/internal/models"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r, "name", "email", "password")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	u, err := s.Social.Accounts.Register(r.Context(), f["name"], f["email"], f["password"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "User registered successfully", Data: map[string]string{"id": u.ID}})
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	f, err := readFields(w, r, "email", "password")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	issued, err := s.Social.Accounts.Authenticate(r.Context(), f["email"], f["password"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Login successful", Token: issued.Token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, p *principal) {
	if err := s.Social.Accounts.Logout(r.Context(), p.claims); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Logged out"})
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request, p *principal) {
	if err := s.Social.Relationships.Follow(r.Context(), p.user, r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Successfully followed User"})
}

func (s *Server) handleUnfollow(w http.ResponseWriter, r *http.Request, p *principal) {
	if err := s.Social.Relationships.Unfollow(r.Context(), p.user, r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Successfully unfollowed User"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request, p *principal) {
	profile, err := s.Social.Accounts.Profile(r.Context(), p.user)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Successfully retrieved user profile data", Data: profile})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request, p *principal) {
	f, err := readFields(w, r, "title", "description")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	post, err := s.Social.Posts.CreatePost(r.Context(), p.user, f["title"], f["description"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Post created successfully", Data: post})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request, p *principal) {
	if err := s.Social.Posts.DeletePost(r.Context(), p.user, r.PathValue("id")); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Post deleted successfully"})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Social.Reader.GetPost(r.Context(), r.PathValue("id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Successfully fetched data", Data: detail})
}

func (s *Server) handleAllPosts(w http.ResponseWriter, r *http.Request, p *principal) {
	posts, err := s.Social.Reader.GetPostsByOwner(r.Context(), p.user.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Successfully fetched the data", Data: posts})
}

func (s *Server) handleReaction(kind models.ReactionKind, msg string) func(http.ResponseWriter, *http.Request, *principal) {
	return func(w http.ResponseWriter, r *http.Request, p *principal) {
		if err := s.Social.Reactions.SetReaction(r.Context(), p.user, r.PathValue("id"), kind); err != nil {
			s.fail(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: msg})
	}
}

func (s *Server) handleComment(w http.ResponseWriter, r *http.Request, p *principal) {
	f, err := readFields(w, r, "comment")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	id, err := s.Social.Reader.CreateComment(r.Context(), p.user, r.PathValue("id"), f["comment"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Comment created successfully", CommentID: id})
}
