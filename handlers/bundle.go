package handlers

import (
	userRepoPkg "chargesphere/database/repository/user"
	"chargesphere/utils"
)

// HandlerBundle groups the endpoint handlers and what the auth middleware needs.
type HandlerBundle struct {
	UserRepo  userRepoPkg.UserRepository
	AuthCache utils.AuthCache

	Auth    *AuthHandler
	User    *UserHandler
	Booking *BookingHandler
	Admin   *AdminHandler
	Review  *ReviewHandler
	Station *StationHandler
	Geocode *GeocodeHandler
	Health  *HealthHandler
}
