package memory

import (
	bookingRepo "chargesphere/database/repository/booking"
	reviewRepo "chargesphere/database/repository/review"
	userRepo "chargesphere/database/repository/user"
)

var (
	_ userRepo.UserRepository       = (*Users)(nil)
	_ bookingRepo.BookingRepository = (*Bookings)(nil)
	_ reviewRepo.ReviewRepository   = (*Reviews)(nil)
)
