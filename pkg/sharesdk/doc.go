/*
Package sharesdk provides a client SDK for the deptshare file sharing service.

# Overview

Accounts belong to exactly one department. Registering returns a generated
identifier such as "FIN-7KQ2MX" which, together with the password, is what
the account logs in with. Files uploaded by an account are visible to every
account of the same department and to nobody else.

# SDKClient vs Session

  - SDKClient: unauthenticated operations (register, login, departments, health)
  - Session: operations on behalf of a logged in account

	client := sharesdk.NewSDKClient("https://share.example.com")

	reg, err := client.Register(ctx, sharesdk.RegisterRequest{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Department:      "Engineering",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	session, err := client.AuthenticateWithPassword(ctx, reg.Identifier, "secret123")

	files, err := session.ListFiles(ctx)
	up, err := session.UploadFile(ctx, "plan.pdf", f)
	n, err := session.DownloadFile(ctx, up.File.ID, w)

	err = session.Logout(ctx)

Sessions are not refreshed. Once the token expires every Session method
returns ErrSessionExpired without contacting the server.

# Validation

RegisterRequest and LoginRequest can be checked before sending:

	if errs := req.Validate(); errs != nil {
		// errs maps JSON field names to messages
	}

The server applies the same rules and answers with a ValidationErrorResponse.

# Error Handling

Non-2xx responses are returned as *APIError. Compare against the predefined
values with errors.Is:

	_, err := session.GetFile(ctx, id)
	switch {
	case errors.Is(err, sharesdk.ErrAccessDenied):
		// the file belongs to another department
	case errors.Is(err, sharesdk.ErrFileNotFound):
	}

The same type is used by the server to write errors, see APIError.WriteError.
*/
package sharesdk
