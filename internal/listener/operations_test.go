package listener

import (
	"testing"

	"github.com/distributedbanking/processing/internal/messages"
	"github.com/distributedbanking/processing/internal/models"
)

func TestRequiredFieldsPresent(t *testing.T) {
	tests := []struct {
		name string
		msg  any
		want bool
	}{
		{
			name: "role creation with a name",
			msg:  messages.RoleCreation{Name: "Customer"},
			want: true,
		},
		{
			name: "role creation without a name",
			msg:  messages.RoleCreation{},
			want: false,
		},
		{
			name: "registration with email and passport",
			msg: messages.CustomerRegistration{
				Email:    "jane@example.com",
				Passport: models.Passport{DocumentNumber: "AA123456"},
			},
			want: true,
		},
		{
			name: "registration without email",
			msg: messages.CustomerRegistration{
				Passport: models.Passport{DocumentNumber: "AA123456"},
			},
			want: false,
		},
		{
			name: "registration without passport document",
			msg:  messages.CustomerRegistration{Email: "jane@example.com"},
			want: false,
		},
		{
			name: "deletion with end-user id",
			msg:  messages.EndUserDeletion{EndUserID: "652d0000000000000000aaaa"},
			want: true,
		},
		{
			name: "account creation without customer id",
			msg:  messages.AccountCreation{Name: "Main"},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := requiredFieldsPresent(tt.msg); got != tt.want {
				t.Errorf("requiredFieldsPresent = %v, want %v", got, tt.want)
			}
		})
	}
}
