// Package kernel provides core domain primitives shared by the order desk model.
//
// The package includes:
//   - ID: a positive integer identity used for users, orders, work logs and notifications
//   - Money: a non-negative decimal amount with two-place rounding
//   - Rate: a commission percentage between 0 and 100
//
// All primitives are immutable values. Their zero values are invalid and are rejected
// by Validate, so a value read from storage or a request must go through a constructor.
package kernel
