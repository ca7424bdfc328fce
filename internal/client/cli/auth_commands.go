package cli

import (
	"context"
	"fmt"
)

// RunRegister регистрирует аккаунт и сразу запускает верификацию email
func (c *Cli) RunRegister(ctx context.Context) error {
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	if _, err := c.auth.Register(ctx, email, name, password); err != nil {
		return err
	}

	c.io.Println("Account created. A verification code has been sent to your email.")

	if err := c.auth.SendOTP(ctx, email); err != nil {
		return err
	}

	return c.verifyPrompt(ctx, email)
}

// RunVerify запрашивает OTP код и подтверждает email
func (c *Cli) RunVerify(ctx context.Context) error {
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	if err := c.auth.SendOTP(ctx, email); err != nil {
		return err
	}
	c.io.Println("A verification code has been sent to your email.")

	return c.verifyPrompt(ctx, email)
}

// verifyPrompt читает код и завершает верификацию
func (c *Cli) verifyPrompt(ctx context.Context, email string) error {
	code, err := c.io.ReadInput("Verification code: ")
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	user, err := c.auth.VerifyOTP(ctx, email, code)
	if err != nil {
		return err
	}

	c.store.SetUser(ctx, user)
	c.io.Printf("Email verified. Welcome, %s!\n", user.Name)
	return nil
}

// RunLogin выполняет вход по email и паролю
func (c *Cli) RunLogin(ctx context.Context) error {
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	user, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.store.SetUser(ctx, user)
	c.io.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

// RunLogout завершает сессию
func (c *Cli) RunLogout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}
	c.store.Reset(ctx)
	c.io.Println("Logged out")
	return nil
}

// RunStatus показывает состояние сессии
func (c *Cli) RunStatus(ctx context.Context) error {
	auth, err := c.auth.Restore(ctx)
	if err != nil {
		c.io.Println("Not authenticated")
		return nil
	}

	c.io.Printf("Authenticated as %s (%s)\n", auth.Email, auth.Role)
	c.io.Printf("Sync channel: %s\n", c.channel.State().String())
	return nil
}
