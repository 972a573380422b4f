package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubscheduler/internal/delivery/http/controllers"
	"clubscheduler/internal/delivery/http/middleware"
	"clubscheduler/internal/domain"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Users       *controllers.UserController
	Categories  *controllers.CategoryController
	Courts      *controllers.CourtController
	Trainings   *controllers.TrainingController
	Tournaments *controllers.TournamentController
	Tuitions    *controllers.TuitionController
	Requests    *controllers.RequestController
}

// NewRouter initializes the HTTP router with all application routes.
// Every route except registration, login and the docs requires a bearer token.
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()

	authed := middleware.RequireAuth(verifier, logger)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleAdmin)(h))
	}
	staff := func(h http.HandlerFunc) http.HandlerFunc {
		return authed(middleware.RequireRole(domain.RoleAdmin, domain.RoleTrainer)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/register", c.Users.Register)
	mux.HandleFunc("POST /auth/login", c.Users.Login)

	// Users
	mux.HandleFunc("GET /users/me", authed(c.Users.GetMe))
	mux.HandleFunc("GET /users/me/requests", authed(c.Requests.ListMyRequests))
	mux.HandleFunc("GET /users", admin(c.Users.ListUsers))
	mux.HandleFunc("PUT /users/{userID}/role", admin(c.Users.ChangeRole))

	// Categories and memberships
	mux.HandleFunc("GET /categories", authed(c.Categories.ListCategories))
	mux.HandleFunc("POST /categories", admin(c.Categories.CreateCategory))
	mux.HandleFunc("GET /categories/{categoryID}", authed(c.Categories.GetCategory))
	mux.HandleFunc("PUT /categories/{categoryID}", admin(c.Categories.UpdateCategory))
	mux.HandleFunc("DELETE /categories/{categoryID}", admin(c.Categories.DeleteCategory))
	mux.HandleFunc("GET /categories/{categoryID}/requirements", authed(c.Categories.ListRequirements))
	mux.HandleFunc("POST /categories/{categoryID}/requirements", admin(c.Categories.AddRequirement))
	mux.HandleFunc("DELETE /requirements/{requirementID}", admin(c.Categories.DeleteRequirement))
	mux.HandleFunc("GET /users/{userID}/categories", authed(c.Categories.ListUserCategories))
	mux.HandleFunc("POST /users/{userID}/categories", authed(c.Categories.JoinCategory))
	mux.HandleFunc("PUT /users/{userID}/categories/{categoryID}", staff(c.Categories.UpdateLevel))
	mux.HandleFunc("DELETE /users/{userID}/categories/{categoryID}", authed(c.Categories.LeaveCategory))

	// Courts and reservations
	mux.HandleFunc("GET /courts", authed(c.Courts.ListCourts))
	mux.HandleFunc("POST /courts", admin(c.Courts.CreateCourt))
	mux.HandleFunc("GET /courts/{courtID}", authed(c.Courts.GetCourt))
	mux.HandleFunc("PUT /courts/{courtID}", admin(c.Courts.RenameCourt))
	mux.HandleFunc("DELETE /courts/{courtID}", admin(c.Courts.DeleteCourt))
	mux.HandleFunc("GET /courts/{courtID}/availability", authed(c.Courts.Availability))
	mux.HandleFunc("GET /courts/{courtID}/reservations", authed(c.Courts.ListReservations))
	mux.HandleFunc("POST /reservations", staff(c.Courts.CreateReservation))
	mux.HandleFunc("GET /reservations/{reservationID}", authed(c.Courts.GetReservation))
	mux.HandleFunc("DELETE /reservations/{reservationID}", staff(c.Courts.DeleteReservation))

	// Trainings
	mux.HandleFunc("GET /trainings", authed(c.Trainings.ListTrainings))
	mux.HandleFunc("POST /trainings", staff(c.Trainings.CreateTraining))
	mux.HandleFunc("GET /trainings/eligible", authed(c.Trainings.ListEligibleTrainings))
	mux.HandleFunc("GET /trainings/{trainingID}", authed(c.Trainings.GetTraining))
	mux.HandleFunc("PATCH /trainings/{trainingID}", staff(c.Trainings.UpdateTraining))
	mux.HandleFunc("DELETE /trainings/{trainingID}", staff(c.Trainings.DeleteTraining))
	mux.HandleFunc("GET /trainings/{trainingID}/registrations", authed(c.Trainings.ListRegistrations))
	mux.HandleFunc("POST /trainings/{trainingID}/registrations/{userID}", authed(c.Trainings.Register))
	mux.HandleFunc("DELETE /trainings/{trainingID}/registrations/{userID}", authed(c.Trainings.Unregister))
	mux.HandleFunc("PUT /trainings/{trainingID}/registrations/{userID}/attendance", staff(c.Trainings.MarkAttendance))
	mux.HandleFunc("GET /trainers/{trainerID}/trainings", authed(c.Trainings.ListTrainerTrainings))
	mux.HandleFunc("GET /users/{userID}/training-registrations", authed(c.Trainings.ListUserRegistrations))

	// Tournaments
	mux.HandleFunc("GET /tournaments", authed(c.Tournaments.ListTournaments))
	mux.HandleFunc("POST /tournaments", staff(c.Tournaments.CreateTournament))
	mux.HandleFunc("GET /tournaments/eligible", authed(c.Tournaments.ListEligibleTournaments))
	mux.HandleFunc("GET /tournaments/{tournamentID}", authed(c.Tournaments.GetTournament))
	mux.HandleFunc("PATCH /tournaments/{tournamentID}", staff(c.Tournaments.UpdateTournament))
	mux.HandleFunc("DELETE /tournaments/{tournamentID}", staff(c.Tournaments.DeleteTournament))
	mux.HandleFunc("GET /tournaments/{tournamentID}/registrations", authed(c.Tournaments.ListRegistrations))
	mux.HandleFunc("POST /tournaments/{tournamentID}/registrations/{userID}", authed(c.Tournaments.Register))
	mux.HandleFunc("DELETE /tournaments/{tournamentID}/registrations/{userID}", authed(c.Tournaments.Unregister))
	mux.HandleFunc("GET /tournaments/{tournamentID}/attendance", authed(c.Tournaments.ListAttendance))
	mux.HandleFunc("POST /tournaments/{tournamentID}/attendance/{userID}", staff(c.Tournaments.RecordAttendance))
	mux.HandleFunc("PUT /tournaments/{tournamentID}/attendance/{userID}", staff(c.Tournaments.UpdatePosition))
	mux.HandleFunc("DELETE /tournaments/{tournamentID}/attendance/{userID}", staff(c.Tournaments.DeleteAttendance))
	mux.HandleFunc("GET /users/{userID}/tournament-registrations", authed(c.Tournaments.ListUserRegistrations))

	// Tuition
	mux.HandleFunc("GET /tuitions", admin(c.Tuitions.ListTuitions))
	mux.HandleFunc("GET /users/{userID}/tuitions", authed(c.Tuitions.ListUserTuitions))
	mux.HandleFunc("POST /users/{userID}/tuitions", authed(c.Tuitions.PayTuition))
	mux.HandleFunc("GET /users/{userID}/tuition-status", authed(c.Tuitions.TuitionStatus))

	// Approval requests
	mux.HandleFunc("POST /requests", authed(c.Requests.CreateRequest))
	mux.HandleFunc("GET /requests", admin(c.Requests.ListRequests))
	mux.HandleFunc("GET /requests/{requestID}", authed(c.Requests.GetRequest))
	mux.HandleFunc("POST /requests/{requestID}/complete", admin(c.Requests.CompleteRequest))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with tracing, request logging and CORS.
func NewHandler(mux *http.ServeMux, logger *slog.Logger, allowedOrigins []string) http.Handler {
	return middleware.CORS(allowedOrigins, middleware.Tracing(middleware.LoggingMiddleware(logger, mux)))
}
