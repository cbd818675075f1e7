package a11y

// Subrole tags classify UI elements beyond their primary role. The set is
// closed; unknown platform strings map to nothing. Subroles carry no
// behavior here, they are a flat lookup used by narration layers.
type Subrole string

const (
	SubroleCloseButton       Subrole = "close_button"
	SubroleMinimizeButton    Subrole = "minimize_button"
	SubroleZoomButton        Subrole = "zoom_button"
	SubroleToolbarButton     Subrole = "toolbar_button"
	SubroleFullScreenButton  Subrole = "full_screen_button"
	SubroleSecureTextField   Subrole = "secure_text_field"
	SubroleSearchField       Subrole = "search_field"
	SubroleStandardWindow    Subrole = "standard_window"
	SubroleDialog            Subrole = "dialog"
	SubroleSystemDialog      Subrole = "system_dialog"
	SubroleFloatingWindow    Subrole = "floating_window"
	SubroleSystemFloating    Subrole = "system_floating_window"
	SubroleIncrementArrow    Subrole = "increment_arrow"
	SubroleDecrementArrow    Subrole = "decrement_arrow"
	SubroleSortButton        Subrole = "sort_button"
	SubroleTableRow          Subrole = "table_row"
	SubroleOutlineRow        Subrole = "outline_row"
	SubroleUnknown           Subrole = "unknown"
	SubroleApplicationDock   Subrole = "application_dock_item"
	SubroleDocumentDock      Subrole = "document_dock_item"
	SubroleFolderDock        Subrole = "folder_dock_item"
	SubroleMinimizedWindow   Subrole = "minimized_window_dock_item"
	SubroleURLDock           Subrole = "url_dock_item"
	SubroleDockExtra         Subrole = "dock_extra_dock_item"
	SubroleTrashDock         Subrole = "trash_dock_item"
	SubroleSeparatorDock     Subrole = "separator_dock_item"
	SubroleProcessSwitcher   Subrole = "process_switcher_list"
	SubroleContentList       Subrole = "content_list"
	SubroleDefinitionList    Subrole = "definition_list"
	SubroleDescriptionList   Subrole = "description_list"
	SubroleRatingIndicator   Subrole = "rating_indicator"
	SubroleSwitch            Subrole = "switch"
	SubroleToggle            Subrole = "toggle"
	SubroleTimeline          Subrole = "timeline"
	SubroleNavigationAudit   Subrole = "navigation_audit"
)

var subroles = map[string]Subrole{
	"AXCloseButton":               SubroleCloseButton,
	"AXMinimizeButton":            SubroleMinimizeButton,
	"AXZoomButton":                SubroleZoomButton,
	"AXToolbarButton":             SubroleToolbarButton,
	"AXFullScreenButton":          SubroleFullScreenButton,
	"AXSecureTextField":           SubroleSecureTextField,
	"AXSearchField":               SubroleSearchField,
	"AXStandardWindow":            SubroleStandardWindow,
	"AXDialog":                    SubroleDialog,
	"AXSystemDialog":              SubroleSystemDialog,
	"AXFloatingWindow":            SubroleFloatingWindow,
	"AXSystemFloatingWindow":      SubroleSystemFloating,
	"AXIncrementArrow":            SubroleIncrementArrow,
	"AXDecrementArrow":            SubroleDecrementArrow,
	"AXSortButton":                SubroleSortButton,
	"AXTableRow":                  SubroleTableRow,
	"AXOutlineRow":                SubroleOutlineRow,
	"AXUnknown":                   SubroleUnknown,
	"AXApplicationDockItem":       SubroleApplicationDock,
	"AXDocumentDockItem":          SubroleDocumentDock,
	"AXFolderDockItem":            SubroleFolderDock,
	"AXMinimizedWindowDockItem":   SubroleMinimizedWindow,
	"AXURLDockItem":               SubroleURLDock,
	"AXDockExtraDockItem":         SubroleDockExtra,
	"AXTrashDockItem":             SubroleTrashDock,
	"AXSeparatorDockItem":         SubroleSeparatorDock,
	"AXProcessSwitcherList":       SubroleProcessSwitcher,
	"AXContentList":               SubroleContentList,
	"AXDefinitionList":            SubroleDefinitionList,
	"AXDescriptionList":           SubroleDescriptionList,
	"AXRatingIndicator":           SubroleRatingIndicator,
	"AXSwitch":                    SubroleSwitch,
	"AXToggle":                    SubroleToggle,
	"AXTimeline":                  SubroleTimeline,
	"AXNavigationAudit":           SubroleNavigationAudit,
}

// LookupSubrole resolves a platform subrole string to its tag.
func LookupSubrole(raw string) (Subrole, bool) {
	s, ok := subroles[raw]
	return s, ok
}
