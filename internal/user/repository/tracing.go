package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/user-service/internal/user/domain"
)

var tracer = otel.Tracer("user-repository")

// TracingUserRepository decorates any domain.UserRepository with an
// OpenTelemetry span per store operation.
type TracingUserRepository struct {
	next domain.UserRepository
}

// NewTracingUserRepository creates a tracing decorator around next
func NewTracingUserRepository(next domain.UserRepository) *TracingUserRepository {
	return &TracingUserRepository{next: next}
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Create with tracing
func (r *TracingUserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("user.username", user.Username),
			attribute.String("user.email", user.Email),
		),
	)

	err := r.next.Create(ctx, user)
	if err == nil {
		span.SetAttributes(attribute.Int("user.id", int(user.ID)))
	}
	finishSpan(span, err)
	return err
}

// FindByID with tracing
func (r *TracingUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)

	user, err := r.next.FindByID(ctx, id)
	if err == nil {
		span.SetAttributes(attribute.String("user.username", user.Username))
	}
	finishSpan(span, err)
	return user, err
}

// FindByUsername with tracing
func (r *TracingUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)

	user, err := r.next.FindByUsername(ctx, username)
	finishSpan(span, err)
	return user, err
}

// FindByEmail with tracing
func (r *TracingUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByEmail",
		trace.WithAttributes(attribute.String("user.email", email)),
	)

	user, err := r.next.FindByEmail(ctx, email)
	finishSpan(span, err)
	return user, err
}

// FindAll with tracing
func (r *TracingUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")

	users, err := r.next.FindAll(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int("user.count", len(users)))
	}
	finishSpan(span, err)
	return users, err
}

// ExistsByID with tracing
func (r *TracingUserRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ExistsByID",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)

	found, err := r.next.ExistsByID(ctx, id)
	finishSpan(span, err)
	return found, err
}

// ExistsByUsername with tracing
func (r *TracingUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ExistsByUsername",
		trace.WithAttributes(attribute.String("user.username", username)),
	)

	found, err := r.next.ExistsByUsername(ctx, username)
	finishSpan(span, err)
	return found, err
}

// ExistsByEmail with tracing
func (r *TracingUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ExistsByEmail",
		trace.WithAttributes(attribute.String("user.email", email)),
	)

	found, err := r.next.ExistsByEmail(ctx, email)
	finishSpan(span, err)
	return found, err
}

// Update with tracing
func (r *TracingUserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.Int("user.id", int(user.ID))),
	)

	err := r.next.Update(ctx, user)
	finishSpan(span, err)
	return err
}

// Delete with tracing
func (r *TracingUserRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int("user.id", int(id))),
	)

	err := r.next.Delete(ctx, id)
	finishSpan(span, err)
	return err
}
