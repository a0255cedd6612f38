package user

import "testing"

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{"valid", User{Name: "Harry Potter", Job: "Young wizard"}, false},
		{"two char job", User{Name: "Ted Lasso", Job: "YZ"}, false},
		{"missing name", User{Job: "Football coach"}, true},
		{"missing job", User{Name: "Ted Lasso"}, true},
		{"one char job", User{Name: "Ted Lasso", Job: "Y"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected a validation error for %+v", tt.user)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error for %+v: %v", tt.user, err)
			}
		})
	}
}
