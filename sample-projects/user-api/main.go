package main

import (
	"net/http"
	"slices"
	"strconv"
	"sync"

	j "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/reoring/jsonskema"
	"github.com/reoring/jsonskema/jsonschema"
	"github.com/reoring/jsonskema/middleware"
)

// userSchema validates POST bodies; patchSchema is the same object with
// nothing required.
const userSchema = `{
  "type": "object",
  "required": ["name", "email"],
  "properties": {
    "name": {"type": "string", "minLength": 1, "maxLength": 64},
    "email": {"type": "string", "format": "email"},
    "age": {"type": "integer", "minimum": 0, "maximum": 150},
    "active": {"type": "boolean"}
  },
  "additionalProperties": false
}`

const patchSchema = `{
  "type": "object",
  "minProperties": 1,
  "properties": {
    "name": {"type": "string", "minLength": 1, "maxLength": 64},
    "email": {"type": "string", "format": "email"},
    "age": {"type": "integer", "minimum": 0, "maximum": 150},
    "active": {"type": "boolean"}
  },
  "additionalProperties": false
}`

// User represents a user in our system
type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
	Active bool   `json:"active"`
}

// UserStore is a simple in-memory store
type UserStore struct {
	mu     sync.RWMutex
	users  map[int]User
	nextID int
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int]User), nextID: 1}
}

func (s *UserStore) Create(user User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = user
	return user
}

func (s *UserStore) GetAll() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b User) int { return a.ID - b.ID })
	return users
}

func (s *UserStore) GetByID(id int) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, exists := s.users[id]
	return user, exists
}

func (s *UserStore) Update(id int, fn func(*User)) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, exists := s.users[id]
	if !exists {
		return User{}, false
	}
	fn(&user)
	s.users[id] = user
	return user, true
}

func (s *UserStore) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[id]; !exists {
		return false
	}
	delete(s.users, id)
	return true
}

// Server holds our application state
type Server struct {
	store  *UserStore
	create *jsonskema.Validator
	patch  *jsonskema.Validator
	log    logrus.FieldLogger
}

func NewServer(log logrus.FieldLogger) (*Server, error) {
	s := &Server{store: NewUserStore(), log: log}
	for _, c := range []struct {
		src string
		dst **jsonskema.Validator
	}{{userSchema, &s.create}, {patchSchema, &s.patch}} {
		sch, err := jsonschema.ParseJSON([]byte(c.src))
		if err != nil {
			return nil, err
		}
		if *c.dst, err = jsonskema.New(sch); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Server) Routes() http.Handler {
	opts := middleware.Options{Logger: s.log, MaxBytes: 64 << 10}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", s.handleGetUsers)
	mux.Handle("POST /users", middleware.Validate(s.create, opts)(http.HandlerFunc(s.handleCreateUser)))
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)
	mux.Handle("PATCH /users/{id}", middleware.Validate(s.patch, opts)(http.HandlerFunc(s.handlePatchUser)))
	mux.HandleFunc("DELETE /users/{id}", s.handleDeleteUser)
	mux.HandleFunc("GET /schema", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, s.create.Schema())
	})
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (s *Server) handleGetUsers(w http.ResponseWriter, _ *http.Request) {
	users := s.store.GetAll()
	writeJSON(w, http.StatusOK, map[string]any{"users": users, "count": len(users)})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, exists := s.store.GetByID(id)
	if !exists {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// The middleware has already validated the body, so decoding into User
// cannot hit a type mismatch.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	user := User{Active: true}
	if err := j.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created := s.store.Create(user)
	s.log.WithField("id", created.ID).Info("user created")
	writeJSON(w, http.StatusCreated, created)
}

// Only the members present in the body are applied; presence comes from the
// validated instance.
func (s *Server) handlePatchUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	inst, _ := middleware.InstanceFromContext(r.Context())
	present, _ := inst.(map[string]any)
	var in User
	if err := j.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var fields []string
	updated, exists := s.store.Update(id, func(u *User) {
		if _, ok := present["name"]; ok {
			u.Name = in.Name
			fields = append(fields, "name")
		}
		if _, ok := present["email"]; ok {
			u.Email = in.Email
			fields = append(fields, "email")
		}
		if _, ok := present["age"]; ok {
			u.Age = in.Age
			fields = append(fields, "age")
		}
		if _, ok := present["active"]; ok {
			u.Active = in.Active
			fields = append(fields, "active")
		}
	})
	if !exists {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": updated, "updated_fields": fields})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if !s.store.Delete(id) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = j.NewEncoder(w).Encode(v)
}

func main() {
	log := logrus.WithField("app", "user-api")
	server, err := NewServer(log)
	if err != nil {
		log.Fatal(err)
	}
	server.store.Create(User{Name: "Taro", Email: "taro@example.com", Age: 30, Active: true})
	server.store.Create(User{Name: "Hanako", Email: "hanako@example.com", Age: 25, Active: true})

	log.Info("listening on :8080")
	if err := http.ListenAndServe(":8080", server.Routes()); err != nil {
		log.Fatal(err)
	}
}
