// Package resource groups classified commands by the model they operate on and
// builds the field union used to render each model.
//
// A Group maps roles ("create", "list", "resetPasswordForVirtualMachine", ...)
// to exactly one command each. MergeFields derives the model's fields from the
// create and update commands only:
//
//	create.response, create.request, update.response, update.request
//
// keeping the first occurrence of every field name.
package resource
