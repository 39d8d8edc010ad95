package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/teachteam/internal/agents"
	"github.com/abhisek/teachteam/internal/export"
	"github.com/abhisek/teachteam/internal/llm"
	"github.com/abhisek/teachteam/internal/session"
	"github.com/abhisek/teachteam/internal/upload"
)

type profileRequest struct {
	Topic          *string `json:"topic"`
	LearningStyle  *string `json:"learning_style"`
	StudyGroup     *string `json:"study_group"`
	CurrentSection *string `json:"current_section"`
}

type textRequest struct {
	Text string `json:"text"`
}

type quizRequest struct {
	Answer string `json:"answer"`
}

type progressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

type askRequest struct {
	Agent    string `json:"agent" binding:"required"`
	Question string `json:"question"`
}

type outcomeResponse struct {
	Outcome session.Outcome `json:"outcome"`
	Session session.View    `json:"session"`
}

// bindOptional decodes a JSON body when one was sent.
func bindOptional(c *gin.Context, v any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(v)
}

// genContext tags generation calls with the session for the audit log.
func genContext(c *gin.Context) context.Context {
	return llm.WithSession(c.Request.Context(), c.Param("id"))
}

func (s *Server) listAgents(c *gin.Context) {
	RespondOK(c, gin.H{
		"agents":         agents.Roster(),
		"search_enabled": s.team.SearchEnabled(),
	})
}

func (s *Server) createSession(c *gin.Context) {
	var req profileRequest
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	sess := session.New(s.cfg.Rules)
	if err := applyProfile(sess, req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_profile", err)
		return
	}
	if err := s.store.Create(c.Request.Context(), sess); err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failed", err)
		return
	}

	s.log.Info("session created", "session_id", sess.ID)
	c.JSON(http.StatusCreated, sess.Snapshot())
}

func applyProfile(sess *session.Session, req profileRequest) error {
	if req.Topic != nil {
		if err := sess.SetTopic(*req.Topic); err != nil {
			return err
		}
	}
	if req.LearningStyle != nil {
		style, err := session.ParseLearningStyle(*req.LearningStyle)
		if err != nil {
			return err
		}
		sess.SetLearningStyle(style)
	}
	if req.StudyGroup != nil {
		sess.JoinStudyGroup(*req.StudyGroup)
	}
	if req.CurrentSection != nil {
		sess.SetCurrentSection(*req.CurrentSection)
	}
	return nil
}

func (s *Server) getSession(c *gin.Context) {
	var view session.View
	err := s.store.View(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, view)
}

func (s *Server) deleteSession(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if req.LearningStyle != nil {
		if _, err := session.ParseLearningStyle(*req.LearningStyle); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_profile", err)
			return
		}
	}

	msg := ""
	if req.StudyGroup != nil {
		msg = session.MsgStudyGroupJoined
	}
	s.mutate(c, msg, func(sess *session.Session) error {
		return applyProfile(sess, req)
	})
}

func (s *Server) generate(c *gin.Context) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	var brief agents.Brief
	err := s.store.Update(ctx, id, func(sess *session.Session) error {
		if strings.TrimSpace(req.Topic) != "" {
			if err := sess.SetTopic(req.Topic); err != nil {
				return err
			}
		}
		brief = agents.Brief{Topic: sess.Topic, Style: sess.LearningStyle, Progress: sess.Progress}
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	content, err := s.team.GenerateAll(genContext(c), brief)
	if err != nil {
		respondErr(c, err)
		return
	}

	var view session.View
	err = s.store.Update(ctx, id, func(sess *session.Session) error {
		// The topic may have changed while the team was writing.
		if sess.Topic == content.Topic {
			sess.SetContent(*content)
		}
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"session": view, "content": content})
}

func (s *Server) submitQuiz(c *gin.Context) {
	var req quizRequest
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s.outcome(c, func(sess *session.Session) (session.Outcome, error) {
		return sess.SubmitQuizAnswer(req.Answer), nil
	})
}

func (s *Server) shareNote(c *gin.Context) {
	var req textRequest
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s.outcome(c, func(sess *session.Session) (session.Outcome, error) {
		return sess.ShareNote(req.Text), nil
	})
}

func (s *Server) submitReview(c *gin.Context) {
	var req textRequest
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s.outcome(c, func(sess *session.Session) (session.Outcome, error) {
		return sess.SubmitPeerReview(req.Text), nil
	})
}

// submitAssignment accepts JSON {"text"} or a multipart form with a "file"
// and/or "text" field. A file takes precedence over text.
func (s *Server) submitAssignment(c *gin.Context) {
	content, decoded, err := assignmentContent(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	ctx := genContext(c)
	var (
		out  session.Outcome
		view session.View
	)
	err = s.store.Update(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		var err error
		out, err = sess.SubmitAssignmentForFeedback(ctx, s.team, content)
		view = sess.Snapshot()
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"outcome": out, "session": view, "decoded": decoded})
}

func assignmentContent(c *gin.Context) (string, bool, error) {
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var req textRequest
		if err := bindOptional(c, &req); err != nil {
			return "", false, err
		}
		return req.Text, true, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		// No file: fall back to the text field.
		return c.PostForm("text"), true, nil
	}
	f, err := fh.Open()
	if err != nil {
		return "", false, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, upload.MaxSize+1))
	if err != nil {
		return "", false, err
	}
	text, ok := upload.ExtractText(fh.Filename, data)
	return text, ok, nil
}

func (s *Server) sendChat(c *gin.Context) {
	var req textRequest
	if err := bindOptional(c, &req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	ctx := genContext(c)
	var (
		reply string
		view  session.View
	)
	err := s.store.Update(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		var err error
		reply, err = sess.SendChatMessage(ctx, s.team, req.Text)
		view = sess.Snapshot()
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"reply": reply, "session": view})
}

func (s *Server) clearChat(c *gin.Context) {
	s.mutate(c, session.MsgChatCleared, func(sess *session.Session) error {
		sess.ClearChat()
		return nil
	})
}

func (s *Server) adjustProgress(c *gin.Context) {
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s.mutate(c, session.MsgProgressAdjusted, func(sess *session.Session) error {
		return sess.AdjustProgress(*req.Progress)
	})
}

func (s *Server) quizQuestion(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var topic, section string
	err := s.store.View(ctx, id, func(sess *session.Session) error {
		topic, section = sess.Topic, sess.SectionLabel()
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	q, err := s.team.QuizQuestion(genContext(c), topic, section)
	if err != nil {
		respondErr(c, err)
		return
	}

	var view session.View
	err = s.store.Update(ctx, id, func(sess *session.Session) error {
		sess.SetQuizQuestion(q.Question)
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"question": q, "session": view})
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	err := s.store.View(c.Request.Context(), c.Param("id"), func(*session.Session) error { return nil })
	if err != nil {
		respondErr(c, err)
		return
	}

	answer, err := s.team.Ask(genContext(c), req.Agent, req.Question)
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"agent": req.Agent, "answer": answer})
}

func (s *Server) reminder(c *gin.Context) {
	err := s.store.View(c.Request.Context(), c.Param("id"), func(*session.Session) error { return nil })
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"reminder": session.Reminder(nil)})
}

func (s *Server) export(c *gin.Context) {
	target, err := export.ParseTarget(c.DefaultQuery("target", string(export.GoogleDocs)))
	if err != nil {
		respondErr(c, err)
		return
	}

	var doc export.Document
	err = s.store.View(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		doc = export.Markdown(sess.Snapshot(), sess.Content, target)
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, doc)
}

// outcome runs a point-earning action and responds with its outcome.
func (s *Server) outcome(c *gin.Context, fn func(*session.Session) (session.Outcome, error)) {
	var resp outcomeResponse
	err := s.store.Update(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		out, err := fn(sess)
		resp = outcomeResponse{Outcome: out, Session: sess.Snapshot()}
		return err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, resp)
}

// mutate runs fn and responds with msg and the updated session view.
func (s *Server) mutate(c *gin.Context, msg string, fn func(*session.Session) error) {
	var view session.View
	err := s.store.Update(c.Request.Context(), c.Param("id"), func(sess *session.Session) error {
		if err := fn(sess); err != nil {
			return err
		}
		view = sess.Snapshot()
		return nil
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	RespondOK(c, gin.H{"message": msg, "session": view})
}
