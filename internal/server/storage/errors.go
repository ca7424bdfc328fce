package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrProductNotFound indicates that product was not found
	ErrProductNotFound = errors.New("product not found")

	// ErrProductAlreadyExists indicates that product with this name already exists
	ErrProductAlreadyExists = errors.New("product already exists")

	// ErrReviewNotFound indicates that review was not found
	ErrReviewNotFound = errors.New("review not found")

	// ErrReviewAlreadyExists indicates that the user has already reviewed this product
	ErrReviewAlreadyExists = errors.New("review already exists")

	// ErrOTPNotFound indicates that no OTP code is stored for the email
	ErrOTPNotFound = errors.New("otp code not found")

	// ErrWishlistItemNotFound indicates that wishlist item was not found
	ErrWishlistItemNotFound = errors.New("wishlist item not found")

	// ErrSliderImageNotFound indicates that slider image was not found
	ErrSliderImageNotFound = errors.New("slider image not found")
)
