package authorization

import (
	"context"
	_ "embed"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	userdomain "github.com/signdesk/signdesk/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

type Params struct {
	fx.In

	Log      *zap.Logger
	Enforcer *casbin.SyncedEnforcer
}

type ServiceImpl struct {
	log      *zap.Logger
	enforcer *casbin.SyncedEnforcer
}

func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, err
	}
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(true)
	enforcer.EnableAutoBuildRoleLinks(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := seedPolicies(enforcer); err != nil {
		return nil, err
	}
	if err := enforcer.BuildRoleLinks(); err != nil {
		return nil, err
	}
	return enforcer, nil
}

func NewService(p Params) Service {
	return &ServiceImpl{
		log:      p.Log.Named("authorization.service"),
		enforcer: p.Enforcer,
	}
}

func (s *ServiceImpl) Authorize(ctx context.Context, role, object, action string) error {
	role = strings.TrimSpace(role)
	if !userdomain.IsValidRole(role) {
		return ErrInvalidRole
	}
	object = strings.TrimSpace(object)
	if object == "" {
		return ErrInvalidObject
	}
	action = strings.TrimSpace(action)
	if action == "" {
		return ErrInvalidAction
	}

	subject := roleSubject(role)
	allowed, err := s.enforcer.Enforce(subject, object, action)
	if err != nil {
		return err
	}
	if !allowed {
		s.log.Debug("authorization denied",
			zap.String("role", role),
			zap.String("object", object),
			zap.String("action", action),
		)
		return ErrForbidden
	}
	return nil
}

func roleSubject(role string) string {
	return "role:" + strings.ToLower(role)
}

// seedPolicies installs the static role permissions. Admin roles hold
// every permission; agent roles hold the day-to-day ones.
func seedPolicies(enforcer *casbin.SyncedEnforcer) error {
	agentPolicies := [][]string{
		{ObjectOrder, ActionView},
		{ObjectOrder, ActionCreate},
		{ObjectOrder, ActionUpdate},
		{ObjectReorder, ActionView},
		{ObjectReorder, ActionCreate},
		{ObjectReorder, ActionUpdate},
		{ObjectReorder, ActionDelete},
		{ObjectCCEmail, ActionView},
		{ObjectCCEmail, ActionCreate},
		{ObjectCCEmail, ActionUpdate},
		{ObjectCCEmail, ActionDelete},
		{ObjectLookup, ActionView},
		{ObjectReport, ActionView},
		{ObjectReport, ActionGenerate},
		{ObjectReport, ActionDownload},
	}
	adminOnlyPolicies := [][]string{
		{ObjectOrder, ActionDelete},
		{ObjectOffice, ActionCreate},
		{ObjectVendor, ActionCreate},
		{ObjectVendor, ActionUpdate},
		{ObjectUser, ActionRegister},
	}

	agentRoles := []string{
		roleSubject(userdomain.RoleAgent),
		roleSubject(userdomain.RoleAdminAgent),
	}
	adminRoles := []string{
		roleSubject(userdomain.RoleITAdmin),
		roleSubject(userdomain.RoleSignAdmin),
	}

	for _, subject := range append(append([]string{}, agentRoles...), adminRoles...) {
		for _, policy := range agentPolicies {
			if _, err := enforcer.AddPolicy(subject, policy[0], policy[1]); err != nil {
				return err
			}
		}
	}
	for _, subject := range adminRoles {
		for _, policy := range adminOnlyPolicies {
			if _, err := enforcer.AddPolicy(subject, policy[0], policy[1]); err != nil {
				return err
			}
		}
	}
	return nil
}
