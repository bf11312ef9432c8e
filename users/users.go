package users

import (
	"encoding/json"
	"log"
	"net/http"

	"cinebook/db"
	"cinebook/models"
	"cinebook/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

type Handlers struct {
	Store *db.Store
}

func NewHandlers(store *db.Store) *Handlers {
	return &Handlers{Store: store}
}

const (
	roleAdmin    = "Admin"
	roleCustomer = "Customer"
)

func roleOf(u models.User) string {
	if u.IsAdmin {
		return roleAdmin
	}
	return roleCustomer
}

type userView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

func viewOf(u models.User) userView {
	return userView{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Phone: u.Phone,
		Role:  roleOf(u),
	}
}

// POST /api/users
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Phone == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Phone:    input.Phone,
		Password: string(hashed),
		IsAdmin:  input.Role == roleAdmin,
	}

	res, err := h.Store.Users.InsertOne(r.Context(), user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Phone number already exists")
			return
		}
		log.Printf("Error creating user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.ID = res.InsertedID.(primitive.ObjectID)

	utils.RespondWithJSON(w, http.StatusCreated, viewOf(user))
}

// GET /api/users
func (h *Handlers) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cur, err := h.Store.Users.Find(r.Context(), bson.M{})
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cur.Close(r.Context())

	var all []models.User
	if err := cur.All(r.Context(), &all); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	views := make([]userView, 0, len(all))
	for _, u := range all {
		views = append(views, viewOf(u))
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

// GET /api/users/stats
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	total, err := h.Store.Users.CountDocuments(r.Context(), bson.M{})
	if err != nil {
		log.Printf("Error fetching user stats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch user stats")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"totalUsers": total})
}

// PUT /api/users/:id
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var input struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	isAdmin := input.Role == roleAdmin
	update := models.UserUpdate{Name: &input.Name, Phone: &input.Phone, IsAdmin: &isAdmin}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.IsAdmin != nil {
		set["isAdmin"] = *update.IsAdmin
	}

	var updated models.User
	err = h.Store.Users.FindOneAndUpdate(r.Context(),
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusBadRequest, "Phone number already exists")
			return
		}
		log.Printf("Error updating user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, viewOf(updated))
}

// DELETE /api/users/:id
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := primitive.ObjectIDFromHex(ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	res, err := h.Store.Users.DeleteOne(r.Context(), bson.M{"_id": id})
	if err != nil {
		log.Printf("Error deleting user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "User deleted successfully"})
}
