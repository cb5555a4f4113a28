// Package main 启动应用程序
package main

import "github.com/yeisme/cloudvault/pkg/cmd"

//	@title			CloudVault API
//	@version		1.0
//	@description	CloudVault 是一个多用户云端文件存储服务，提供文件夹层级管理、文件上传下载、标签检索与审计日志等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
