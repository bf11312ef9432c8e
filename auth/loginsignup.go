package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cinebook/db"
	"cinebook/globals"
	"cinebook/middleware"
	"cinebook/models"
	"cinebook/rdx"
	"cinebook/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 12 * time.Hour

type Handlers struct {
	Store *db.Store
}

func NewHandlers(store *db.Store) *Handlers {
	return &Handlers{Store: store}
}

func (h *Handlers) registerHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if input.Name == "" || input.Phone == "" || input.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if input.Password != input.ConfirmPassword {
		utils.RespondWithError(w, http.StatusBadRequest, "Passwords do not match")
		return
	}

	// Check if the phone number is already registered
	err := h.Store.Users.FindOne(r.Context(), bson.M{"phone": input.Phone}).Err()
	if err == nil {
		utils.RespondWithError(w, http.StatusConflict, "Phone number already exists")
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password for %s: %v", input.Phone, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := models.User{
		Name:     input.Name,
		Phone:    input.Phone,
		Password: string(hashedPassword),
	}

	if _, err := h.Store.Users.InsertOne(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	if err := rdx.RdxSet(fmt.Sprintf("users:%s", user.Phone), user.Name); err != nil {
		log.Printf("Failed to cache user name: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"message": "Registration successful"})
}

func (h *Handlers) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var storedUser models.User
	err := h.Store.Users.FindOne(r.Context(), bson.M{"phone": input.Phone}).Decode(&storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid phone number or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid phone number or password")
		return
	}

	tokenString, err := issueToken(storedUser)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	if err := rdx.RdxHset("tokens", storedUser.Phone, tokenString); err != nil {
		log.Printf("Redis token storage failed: %v", err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Login successful",
		"token":   tokenString,
		"user": utils.M{
			"name":    storedUser.Name,
			"phone":   storedUser.Phone,
			"isAdmin": storedUser.IsAdmin,
		},
	})
}

func (h *Handlers) logoutHandler(w http.ResponseWriter, r *http.Request) {
	phone := utils.GetUserPhoneFromRequest(r)
	if phone == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := rdx.RdxHdel("tokens", phone); err != nil {
		log.Printf("Error removing token from Redis: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Logged out successfully"})
}

// updateProfileHandler lets the caller change their own name, phone and
// password. A phone change is refused when the new number is taken.
func (h *Handlers) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	caller := utils.GetUserPhoneFromRequest(r)
	if caller == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input struct {
		Name            string `json:"name"`
		Phone           string `json:"phone"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Name == "" || input.Phone == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name and phone number are required")
		return
	}

	var user models.User
	if err := h.Store.Users.FindOne(r.Context(), bson.M{"phone": caller}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User does not exist")
		return
	}

	update := models.UserUpdate{Name: &input.Name}

	if input.Phone != user.Phone {
		err := h.Store.Users.FindOne(r.Context(), bson.M{"phone": input.Phone}).Err()
		if err == nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Phone number already exists")
			return
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		update.Phone = &input.Phone
	}

	if input.Password != "" {
		if input.Password != input.ConfirmPassword {
			utils.RespondWithError(w, http.StatusBadRequest, "Passwords do not match")
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		hashedStr := string(hashed)
		update.Password = &hashedStr
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Password != nil {
		set["password"] = *update.Password
	}

	if _, err := h.Store.Users.UpdateOne(r.Context(), bson.M{"phone": caller}, bson.M{"$set": set}); err != nil {
		log.Printf("Error updating profile for %s: %v", caller, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"message": "Profile updated",
		"user": utils.M{
			"name":    input.Name,
			"phone":   input.Phone,
			"isAdmin": user.IsAdmin,
		},
	})
}

func issueToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:    user.Name,
		Phone:   user.Phone,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}
