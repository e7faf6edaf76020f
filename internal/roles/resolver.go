// Package roles decides which dashboard a user lands on. The decision
// is one-shot: it re-runs on every visit to the menu and nothing is
// memoized.
package roles

import (
	"context"

	logrus "github.com/sirupsen/logrus"

	"github.com/wheels/wheels-go/internal/models"
)

// Dashboard is the landing screen the resolver picks.
type Dashboard string

const (
	DashboardLogin     Dashboard = "login"
	DashboardDriver    Dashboard = "driver"
	DashboardPassenger Dashboard = "passenger"
)

// Session is the slice of the session store the resolver needs.
type Session interface {
	IsAuthenticated() bool
	User() *models.User
}

// RoleLister fetches the backend's role entries for a user.
type RoleLister interface {
	ForUser(ctx context.Context, userID uint) ([]models.Role, error)
}

// VehicleLister fetches the caller's vehicles, the fallback signal when
// the backend reports no roles at all.
type VehicleLister interface {
	Mine(ctx context.Context) ([]models.Vehicle, error)
}

type Resolver struct {
	Session  Session
	Roles    RoleLister
	Vehicles VehicleLister
}

func NewResolver(session Session, roleSvc RoleLister, vehicleSvc VehicleLister) *Resolver {
	return &Resolver{Session: session, Roles: roleSvc, Vehicles: vehicleSvc}
}

// Resolve picks the dashboard for the current user:
//
//  1. No session: back to login.
//  2. A non-empty role list decides on its own: driver iff it holds an
//     active driver role. An inactive-only driver role means passenger.
//  3. An empty role list (a real answer, not an error) falls back to
//     vehicle ownership: one or more vehicles means driver.
//  4. Any fetch error is swallowed; passenger is the safe default.
func (r *Resolver) Resolve(ctx context.Context) Dashboard {
	if !r.Session.IsAuthenticated() {
		return DashboardLogin
	}
	user := r.Session.User()
	if user == nil {
		return DashboardLogin
	}

	roleList, err := r.Roles.ForUser(ctx, user.ID)
	if err != nil {
		logrus.Warnf("role fetch failed, defaulting to passenger: %v", err)
		return DashboardPassenger
	}

	if len(roleList) > 0 {
		for _, role := range roleList {
			if role.IsActiveDriver() {
				return DashboardDriver
			}
		}
		return DashboardPassenger
	}

	vehicles, err := r.Vehicles.Mine(ctx)
	if err != nil {
		logrus.Warnf("vehicle fetch failed, defaulting to passenger: %v", err)
		return DashboardPassenger
	}
	if len(vehicles) > 0 {
		return DashboardDriver
	}
	return DashboardPassenger
}
