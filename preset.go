package docperm

import "github.com/supremind/docperm/types"

// AdministratorRule displays every other application permission as held by administrators
func AdministratorRule() types.ImpliedByRule {
	return types.ImpliedByRule{
		Trigger: types.Administrator,
		Label:   "Implied by " + string(types.Administrator),
	}
}

// OwnerRule displays every other document permission as held by owners
func OwnerRule() types.ImpliedByRule {
	return types.ImpliedByRule{
		Trigger: types.Owner,
		Label:   "Implied by " + string(types.Owner),
	}
}

// DocumentHierarchyRules displays weaker document permissions as held by holders of stronger ones
func DocumentHierarchyRules() []types.ImpliedByRule {
	return []types.ImpliedByRule{
		{
			Trigger: types.Delete,
			Label:   "Implied by " + string(types.Delete),
			Implies: []types.Permission{types.Edit, types.View, types.Use},
		},
		{
			Trigger: types.Edit,
			Label:   "Implied by " + string(types.Edit),
			Implies: []types.Permission{types.View, types.Use},
		},
		{
			Trigger: types.View,
			Label:   "Implied by " + string(types.View),
			Implies: []types.Permission{types.Use},
		},
	}
}

// ApplicationCatalog is the default catalog of application permissions
func ApplicationCatalog() types.Catalog {
	return types.Catalog{
		Scope: types.ScopeApplication,
		Permissions: []types.PermissionDef{
			{Permission: types.Administrator, DisplayName: "Administrator", Description: "Full access to everything"},
			{Permission: types.Annotations, DisplayName: "Annotations", Description: "Create and edit annotations"},
			{Permission: types.ChangeOwner, DisplayName: "Change Owner", Description: "Change owners of documents"},
			{Permission: types.DeleteData, DisplayName: "Delete Data", Description: "Delete data held in streams"},
			{Permission: types.ExportConfiguration, DisplayName: "Export Configuration", Description: "Export content"},
			{Permission: types.ImportConfiguration, DisplayName: "Import Configuration", Description: "Import content"},
			{Permission: types.ManageAPIKeys, DisplayName: "Manage API Keys", Description: "Create and revoke API keys of others"},
			{Permission: types.ManageCache, DisplayName: "Manage Cache", Description: "Clear and inspect caches"},
			{Permission: types.ManageDBTables, DisplayName: "Manage DB Tables", Description: "Inspect database tables"},
			{Permission: types.ManageJobs, DisplayName: "Manage Jobs", Description: "Enable, disable, and schedule jobs"},
			{Permission: types.ManageNodes, DisplayName: "Manage Nodes", Description: "Enable and disable nodes"},
			{Permission: types.ManageProcessors, DisplayName: "Manage Processors", Description: "Manage stream processors"},
			{Permission: types.ManageProperties, DisplayName: "Manage Properties", Description: "Edit global properties"},
			{Permission: types.ManageTasks, DisplayName: "Manage Tasks", Description: "Inspect and terminate server tasks"},
			{Permission: types.ManageUsers, DisplayName: "Manage Users", Description: "Manage users, groups, and their permissions"},
			{Permission: types.ManageVolumes, DisplayName: "Manage Volumes", Description: "Manage data volumes"},
			{Permission: types.ViewData, DisplayName: "View Data", Description: "View stream data"},
			{Permission: types.ViewSystemInfo, DisplayName: "View System Info", Description: "View system information"},
		},
		Rules: []types.ImpliedByRule{AdministratorRule()},
	}
}

// DefaultDocTypes are document types used if none is given to DocumentCatalog
var DefaultDocTypes = []types.DocType{
	{Type: "Dashboard", DisplayName: "Dashboard"},
	{Type: "Dictionary", DisplayName: "Dictionary"},
	{Type: "Feed", DisplayName: "Feed"},
	{Type: "Folder", DisplayName: "Folder"},
	{Type: "Index", DisplayName: "Index"},
	{Type: "Pipeline", DisplayName: "Pipeline"},
	{Type: "XSLT", DisplayName: "XSL Translation"},
}

// DocumentCatalog is the default catalog of document permissions,
// folders may grant creating documents of docTypes
func DocumentCatalog(docTypes ...types.DocType) types.Catalog {
	if len(docTypes) == 0 {
		docTypes = DefaultDocTypes
	}

	return types.Catalog{
		Scope: types.ScopeDocument,
		Permissions: []types.PermissionDef{
			{Permission: types.Use, DisplayName: "Use", Description: "Use the document in other documents"},
			{Permission: types.View, DisplayName: "View", Description: "Open the document read only"},
			{Permission: types.Edit, DisplayName: "Edit", Description: "Change the document"},
			{Permission: types.Delete, DisplayName: "Delete", Description: "Delete the document"},
			{Permission: types.Owner, DisplayName: "Owner", Description: "Full control of the document, including its permissions"},
		},
		Rules:    append([]types.ImpliedByRule{OwnerRule()}, DocumentHierarchyRules()...),
		DocTypes: append([]types.DocType(nil), docTypes...),
	}
}
