// libraryctl 运维命令行工具
// 说明：管理员账号不走公开注册接口，只能用这里的create-admin创建
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
)

var rootCmd = &cobra.Command{
	Use:   "libraryctl",
	Short: "图书馆管理系统运维工具",
	Long:  "libraryctl 提供不适合暴露为HTTP接口的运维操作，例如创建管理员账号。",
}

var (
	adminUsername string
	adminEmail    string
	adminPassword string
	adminFullName string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "创建管理员账号",
	Long:  "直接连接数据库创建一个admin角色的账号，密码校验规则与注册接口一致。",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 敏感参数优先从环境变量读取，避免出现在shell历史里
		if adminPassword == "" {
			adminPassword = os.Getenv("LIBRARY_ADMIN_PASSWORD")
		}
		if adminUsername == "" || adminEmail == "" || adminPassword == "" {
			return fmt.Errorf("username、email、password均不能为空（password可用环境变量LIBRARY_ADMIN_PASSWORD传入）")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}

		db, err := mysql.NewDB(cfg)
		if err != nil {
			return fmt.Errorf("连接数据库失败: %w", err)
		}

		userRepo := mysql.NewUserRepository(db)
		userService := user.NewService(userRepo)
		createAdmin := appuser.NewCreateAdminUseCase(userService)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := createAdmin.Execute(ctx, appuser.RegisterRequest{
			Username: adminUsername,
			Email:    adminEmail,
			Password: adminPassword,
			FullName: adminFullName,
		}, user.RoleAdmin)
		if err != nil {
			return fmt.Errorf("创建管理员失败: %w", err)
		}

		fmt.Printf("✓ 管理员创建成功\n")
		fmt.Printf("  - ID: %d\n", result.UserID)
		fmt.Printf("  - 用户名: %s\n", result.Username)
		fmt.Printf("  - 邮箱: %s\n", result.Email)
		fmt.Printf("  - 角色: %s\n", result.Role)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "管理员用户名（3-50字符）")
	createAdminCmd.Flags().StringVarP(&adminEmail, "email", "e", "", "管理员邮箱")
	createAdminCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "密码（8-20位，含字母和数字）")
	createAdminCmd.Flags().StringVarP(&adminFullName, "full-name", "n", "", "姓名（可选）")

	rootCmd.AddCommand(createAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
